package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every catalog below the root.
const DefaultInclude = "**/*.po"

// Discover returns the absolute, sorted paths of the regular files below dir
// matching the doublestar pattern. The pattern is relative to dir and uses
// forward slashes.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultInclude
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid include pattern %q", pattern)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to match %q in %s: %w", pattern, root, err)
	}

	var files []string
	for _, match := range matches {
		path := filepath.Join(root, filepath.FromSlash(match))
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}
