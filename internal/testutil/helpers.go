package testutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Message is one msgid/msgstr pair of a generated catalog.
type Message struct {
	Context string
	ID      string
	Str     string
}

// POContent renders a minimal catalog. An empty language leaves the
// Language header out.
func POContent(language string, messages ...Message) string {
	var b strings.Builder
	b.WriteString("msgid \"\"\nmsgstr \"\"\n")
	b.WriteString("\"Content-Type: text/plain; charset=UTF-8\\n\"\n")
	if language != "" {
		fmt.Fprintf(&b, "\"Language: %s\\n\"\n", language)
	}
	for _, m := range messages {
		b.WriteString("\n")
		if m.Context != "" {
			fmt.Fprintf(&b, "msgctxt \"%s\"\n", m.Context)
		}
		fmt.Fprintf(&b, "msgid \"%s\"\nmsgstr \"%s\"\n", m.ID, m.Str)
	}
	return b.String()
}

// WritePO writes a generated catalog below dir and returns its path.
func WritePO(t *testing.T, dir, name, language string, messages ...Message) string {
	t.Helper()

	path := filepath.Join(dir, name)
	CreateTestFile(t, path, []byte(POContent(language, messages...)))
	return path
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return data
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual := ReadFile(t, path)
	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	if !strings.Contains(string(ReadFile(t, path)), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}

// AssertFileNotContains checks that a file does not contain a substring
func AssertFileNotContains(t *testing.T, path string, substring string) {
	t.Helper()

	if strings.Contains(string(ReadFile(t, path)), substring) {
		t.Errorf("File %s unexpectedly contains %q", path, substring)
	}
}

// CaptureOutput captures stdout/stderr during test execution
func CaptureOutput(t *testing.T, f func()) (stdout, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()

	os.Stdout = wOut
	os.Stderr = wErr

	// Drain both pipes while f runs so large output cannot block it.
	outCh := make(chan string)
	errCh := make(chan string)
	go func() { b, _ := io.ReadAll(rOut); outCh <- string(b) }()
	go func() { b, _ := io.ReadAll(rErr); errCh <- string(b) }()

	func() {
		defer func() {
			wOut.Close()
			wErr.Close()
			os.Stdout = oldStdout
			os.Stderr = oldStderr
		}()
		f()
	}()

	return <-outCh, <-errCh
}
