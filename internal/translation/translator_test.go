package translation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/poai/internal/archive"
	"codeberg.org/snonux/poai/internal/catalog"
	"codeberg.org/snonux/poai/internal/provider"
	"codeberg.org/snonux/poai/internal/testutil"
)

func newTestTranslator(p provider.Provider) (*Translator, *testutil.Recorder[Event]) {
	rec := &testutil.Recorder[Event]{}
	tr := NewTranslator(p)
	tr.Sink = rec.Record
	return tr, rec
}

func TestTranslateFile_PlaceholderScenario(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePO(t, dir, "fr.po", "fr", testutil.Message{ID: "Hello {name}!"})

	mock := &testutil.MockProvider{Translations: map[string]string{"Hello {name}!": "Bonjour {name} !"}}
	tr, rec := newTestTranslator(mock)

	result, err := tr.TranslateFile(context.Background(), Options{FilePath: path})
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	if result.Processed != 1 || result.Total != 1 || result.Language != "fr" || result.DryRun {
		t.Errorf("unexpected result: %+v", result)
	}

	want := testutil.POContent("fr", testutil.Message{ID: "Hello {name}!", Str: "Bonjour {name} !"})
	testutil.AssertFileContent(t, path, []byte(want))

	wantEvents := []Event{
		{Kind: EventStart, FilePath: path, Total: 1},
		{Kind: EventProgress, FilePath: path, Processed: 1, Total: 1},
		{Kind: EventDone, FilePath: path, Processed: 1, Total: 1},
	}
	if got := rec.Events(); !reflect.DeepEqual(got, wantEvents) {
		t.Errorf("events = %+v\nwant %+v", got, wantEvents)
	}

	calls := mock.Calls()
	if len(calls) != 1 || calls[0].TargetLanguage != "fr" || calls[0].Text != "Hello {name}!" {
		t.Errorf("provider calls = %+v", calls)
	}
}

func TestTranslateFile_EventSequence(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePO(t, dir, "de.po", "de",
		testutil.Message{ID: "One"},
		testutil.Message{ID: "Two", Str: "Zwei"},
		testutil.Message{ID: "Three"},
		testutil.Message{Context: "menu", ID: "Open"},
	)

	tr, rec := newTestTranslator(&testutil.MockProvider{})
	if _, err := tr.TranslateFile(context.Background(), Options{FilePath: path}); err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	events := rec.Events()
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5: %+v", len(events), events)
	}
	if events[0].Kind != EventStart || events[0].Total != 3 {
		t.Errorf("first event = %+v, want start with total 3", events[0])
	}
	for i := 1; i <= 3; i++ {
		if events[i].Kind != EventProgress || events[i].Processed != i || events[i].Total != 3 {
			t.Errorf("event %d = %+v, want progress %d/3", i, events[i], i)
		}
	}
	if events[4].Kind != EventDone || events[4].Processed != 3 {
		t.Errorf("last event = %+v, want done 3/3", events[4])
	}

	testutil.AssertFileContains(t, path, `msgstr "[T] One"`)
	testutil.AssertFileContains(t, path, `msgstr "Zwei"`)
	testutil.AssertFileContains(t, path, "msgctxt \"menu\"\nmsgid \"Open\"\nmsgstr \"[T] Open\"")
}

func TestTranslateFile_EscapesQuotesOnce(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePO(t, dir, "fr.po", "fr", testutil.Message{ID: "He said yes"})

	mock := &testutil.MockProvider{Translations: map[string]string{"He said yes": `Il a dit "oui"`}}
	tr, _ := newTestTranslator(mock)
	if _, err := tr.TranslateFile(context.Background(), Options{FilePath: path}); err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	testutil.AssertFileContains(t, path, `msgstr "Il a dit \"oui\""`)
	testutil.AssertFileNotContains(t, path, `\\"`)

	c, err := catalog.ParseFile(path)
	if err != nil {
		t.Fatalf("written file does not parse: %v", err)
	}
	if got := c.Lookup("", "He said yes").Translation(); got != `Il a dit "oui"` {
		t.Errorf("translation after reload = %q", got)
	}
}

func TestTranslateFile_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePO(t, dir, "fr.po", "fr",
		testutil.Message{ID: "Hello"},
		testutil.Message{ID: "World"},
	)
	before := testutil.ReadFile(t, path)

	mock := &testutil.MockProvider{}
	tr, rec := newTestTranslator(mock)
	result, err := tr.TranslateFile(context.Background(), Options{FilePath: path, DryRun: true})
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	testutil.AssertFileContent(t, path, before)
	if !result.DryRun || result.Processed != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
	if mock.CallCount() != 2 {
		t.Errorf("provider calls = %d, want 2", mock.CallCount())
	}

	events := rec.Events()
	last := events[len(events)-1]
	if last.Kind != EventDone || !last.DryRun || last.Processed != 2 {
		t.Errorf("done event = %+v, want dry-run done 2/2", last)
	}
}

func TestTranslateFile_LanguageResolution(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		option  string
		want    string
		wantErr bool
	}{
		{"header only", "de", "", "de", false},
		{"option overrides header", "de", "fr", "fr", false},
		{"option without header", "", "es", "es", false},
		{"neither", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WritePO(t, t.TempDir(), "messages.po", tt.header, testutil.Message{ID: "Hello"})
			mock := &testutil.MockProvider{}
			tr, rec := newTestTranslator(mock)

			result, err := tr.TranslateFile(context.Background(), Options{FilePath: path, Language: tt.option})
			if tt.wantErr {
				var cerr *ConfigurationError
				if !errors.As(err, &cerr) {
					t.Fatalf("error = %v, want *ConfigurationError", err)
				}
				if cerr.FilePath != path || !strings.Contains(err.Error(), path) {
					t.Errorf("error %q does not name %s", err, path)
				}
				if mock.CallCount() != 0 || len(rec.Events()) != 0 {
					t.Error("no provider calls or events expected without a language")
				}
				return
			}
			if err != nil {
				t.Fatalf("TranslateFile failed: %v", err)
			}
			if result.Language != tt.want {
				t.Errorf("Language = %s, want %s", result.Language, tt.want)
			}
			if calls := mock.Calls(); calls[0].TargetLanguage != tt.want {
				t.Errorf("TargetLanguage = %s, want %s", calls[0].TargetLanguage, tt.want)
			}
		})
	}
}

func TestTranslateFile_NothingToTranslate(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePO(t, dir, "fr.po", "fr", testutil.Message{ID: "Hello", Str: "Bonjour"})
	before := testutil.ReadFile(t, path)

	mock := &testutil.MockProvider{}
	tr, rec := newTestTranslator(mock)
	result, err := tr.TranslateFile(context.Background(), Options{FilePath: path})
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	if result.Total != 0 || mock.CallCount() != 0 {
		t.Errorf("result = %+v, calls = %d", result, mock.CallCount())
	}
	wantEvents := []Event{
		{Kind: EventStart, FilePath: path},
		{Kind: EventDone, FilePath: path},
	}
	if got := rec.Events(); !reflect.DeepEqual(got, wantEvents) {
		t.Errorf("events = %+v, want %+v", got, wantEvents)
	}
	testutil.AssertFileContent(t, path, before)
}

func TestTranslateFile_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.po")
	testutil.CreateTestFile(t, path, []byte("msgid \"\"\nmsgstr \"\"\n\nmsgid \"Say \"hi\"\"\nmsgstr \"\"\n"))

	mock := &testutil.MockProvider{}
	tr, rec := newTestTranslator(mock)
	_, err := tr.TranslateFile(context.Background(), Options{FilePath: path, Language: "fr"})

	var perr *catalog.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *catalog.ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("ParseError.Path = %s, want %s", perr.Path, path)
	}
	if mock.CallCount() != 0 || len(rec.Events()) != 0 {
		t.Error("no provider calls or events expected for a malformed file")
	}
}

func TestTranslateFile_ProviderErrorLeavesFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePO(t, dir, "fr.po", "fr",
		testutil.Message{ID: "Hello"},
		testutil.Message{ID: "World"},
	)
	before := testutil.ReadFile(t, path)

	backendErr := errors.New("quota exceeded")
	mock := &testutil.MockProvider{Errors: map[string]error{"World": backendErr}}
	tr, rec := newTestTranslator(mock)

	_, err := tr.TranslateFile(context.Background(), Options{FilePath: path})
	var perr *provider.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *provider.ProviderError", err)
	}
	if !errors.Is(err, backendErr) {
		t.Errorf("backend error not reachable from %v", err)
	}

	testutil.AssertFileContent(t, path, before)
	for _, e := range rec.Events() {
		if e.Kind == EventDone {
			t.Error("done must not be emitted for a failed file")
		}
	}
}

func TestTranslateFile_PreservesModeAndRecordsArchive(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePO(t, dir, "fr.po", "fr", testutil.Message{ID: "Hello"})
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	before := testutil.ReadFile(t, path)

	journal := archive.NewJournal()
	tr, _ := newTestTranslator(&testutil.MockProvider{})
	tr.Archive = journal

	if _, err := tr.TranslateFile(context.Background(), Options{FilePath: path}); err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	if paths := journal.Paths(); len(paths) != 1 || paths[0] != path {
		t.Fatalf("journal paths = %v, want [%s]", paths, path)
	}
	if err := journal.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	testutil.AssertFileContent(t, path, before)
}

func TestTranslateFile_DryRunDoesNotRecordArchive(t *testing.T) {
	path := testutil.WritePO(t, t.TempDir(), "fr.po", "fr", testutil.Message{ID: "Hello"})

	journal := archive.NewJournal()
	tr, _ := newTestTranslator(&testutil.MockProvider{})
	tr.Archive = journal

	if _, err := tr.TranslateFile(context.Background(), Options{FilePath: path, DryRun: true}); err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	if journal.Len() != 0 {
		t.Errorf("journal has %d entries after a dry run", journal.Len())
	}
}

func TestTranslateFile_PassesModelAndRules(t *testing.T) {
	path := testutil.WritePO(t, t.TempDir(), "fr.po", "fr", testutil.Message{ID: "Hello"})

	mock := &testutil.MockProvider{}
	tr, _ := newTestTranslator(mock)
	opts := Options{FilePath: path, Model: "gpt-4o", Rules: "Use formal register."}
	if _, err := tr.TranslateFile(context.Background(), opts); err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	calls := mock.Calls()
	if calls[0].Model != "gpt-4o" || calls[0].Rules != "Use formal register." {
		t.Errorf("request = %+v", calls[0])
	}
}

func TestTranslateFile_RelativePathIsResolved(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePO(t, dir, "fr.po", "fr", testutil.Message{ID: "Hello"})
	t.Chdir(dir)

	tr, rec := newTestTranslator(&testutil.MockProvider{})
	result, err := tr.TranslateFile(context.Background(), Options{FilePath: "fr.po"})
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	if !filepath.IsAbs(result.FilePath) {
		t.Errorf("FilePath = %s, want an absolute path", result.FilePath)
	}
	if events := rec.Events(); events[0].FilePath != result.FilePath {
		t.Errorf("event path = %s, want %s", events[0].FilePath, result.FilePath)
	}
}

func TestTranslateFile_MismatchPolicyFail(t *testing.T) {
	path := testutil.WritePO(t, t.TempDir(), "fr.po", "fr", testutil.Message{ID: "Hello"})
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	doc.Catalog.Lookup("", "Hello").MsgID = "Changed"

	tr, _ := newTestTranslator(&testutil.MockProvider{})
	tr.Policy = catalog.MismatchFail
	_, err = tr.TranslateDocument(context.Background(), doc, Options{})

	var merr *catalog.MismatchError
	if !errors.As(err, &merr) {
		t.Errorf("error = %v, want *catalog.MismatchError", err)
	}
}

func TestTranslateFile_CancelledContext(t *testing.T) {
	path := testutil.WritePO(t, t.TempDir(), "fr.po", "fr", testutil.Message{ID: "Hello"})
	before := testutil.ReadFile(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &testutil.MockProvider{}
	tr, _ := newTestTranslator(mock)
	_, err := tr.TranslateFile(ctx, Options{FilePath: path})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider calls = %d, want 0", mock.CallCount())
	}
	testutil.AssertFileContent(t, path, before)
}
