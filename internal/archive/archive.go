package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// snapshot is the content and mode of a file before it was first overwritten.
type snapshot struct {
	data []byte
	mode os.FileMode
}

// Journal keeps the original bytes of every file written during one run so
// the run can be undone. It is safe for concurrent use.
type Journal struct {
	mu    sync.Mutex
	files map[string]snapshot
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{files: make(map[string]snapshot)}
}

// Record stores the original content of path. Only the first call for a path
// is kept, so a file written twice restores to its state before the run.
func (j *Journal) Record(path string, data []byte, mode os.FileMode) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.files[path]; ok {
		return
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	j.files[path] = snapshot{data: buf, mode: mode.Perm()}
}

// Paths returns the recorded paths in sorted order.
func (j *Journal) Paths() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	paths := make([]string, 0, len(j.files))
	for p := range j.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of recorded files.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.files)
}

// Restore writes every recorded file back to its original content. It keeps
// going after a failed write and returns all failures joined.
func (j *Journal) Restore() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var errs []error
	for path, snap := range j.files {
		if err := os.WriteFile(path, snap.data, snap.mode); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore %s: %w", path, err))
			continue
		}
		delete(j.files, path)
	}
	return errors.Join(errs...)
}

// Backup copies the recorded originals into a timestamped directory below
// dir and returns its path. Files keep their path relative to root.
func (j *Journal) Backup(dir, root string) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.files) == 0 {
		return "", nil
	}

	timestamp := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(dir, fmt.Sprintf("po-%s", timestamp))

	// Check if backup already exists (unlikely but possible)
	if _, err := os.Stat(backupPath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		backupPath = filepath.Join(dir, fmt.Sprintf("po-%s", timestamp))
	}

	for path, snap := range j.files {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(path)
		}
		target := filepath.Join(backupPath, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
		if err := os.WriteFile(target, snap.data, snap.mode); err != nil {
			return "", fmt.Errorf("failed to write backup of %s: %w", path, err)
		}
	}
	return backupPath, nil
}
