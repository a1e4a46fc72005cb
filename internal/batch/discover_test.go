package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"codeberg.org/snonux/poai/internal/testutil"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"fr/messages.po",
		"de/messages.po",
		"top.po",
		"de/LC_MESSAGES/app.po",
		"notes.txt",
		"fr/messages.pot",
	} {
		testutil.CreateTestFile(t, filepath.Join(root, name), []byte("msgid \"\"\nmsgstr \"\"\n"))
	}
	// A directory with a matching name is not a catalog.
	if err := os.MkdirAll(filepath.Join(root, "dir.po"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "default pattern",
			pattern: "",
			want: []string{
				"de/LC_MESSAGES/app.po",
				"de/messages.po",
				"fr/messages.po",
				"top.po",
			},
		},
		{
			name:    "one language",
			pattern: "fr/*.po",
			want:    []string{"fr/messages.po"},
		},
		{
			name:    "gettext layout",
			pattern: "**/LC_MESSAGES/*.po",
			want:    []string{"de/LC_MESSAGES/app.po"},
		},
		{
			name:    "no match",
			pattern: "**/*.json",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discover(root, tt.pattern)
			if err != nil {
				t.Fatalf("Discover failed: %v", err)
			}
			var want []string
			for _, rel := range tt.want {
				want = append(want, filepath.Join(root, filepath.FromSlash(rel)))
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Discover() = %v, want %v", got, want)
			}
		})
	}
}

func TestDiscoverRelativeRoot(t *testing.T) {
	root := t.TempDir()
	testutil.CreateTestFile(t, filepath.Join(root, "locales", "fr.po"), []byte(""))
	t.Chdir(root)

	got, err := Discover("locales", "")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(got) != 1 || !filepath.IsAbs(got[0]) {
		t.Errorf("Discover() = %v, want one absolute path", got)
	}
}

func TestDiscoverErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "fr.po")
	testutil.CreateTestFile(t, file, []byte(""))

	tests := []struct {
		name    string
		dir     string
		pattern string
	}{
		{"missing directory", filepath.Join(root, "missing"), ""},
		{"file instead of directory", file, ""},
		{"invalid pattern", root, "[a-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Discover(tt.dir, tt.pattern); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
