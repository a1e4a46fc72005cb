package catalog

import (
	"fmt"

	"github.com/leonelquinteros/gotext"
)

// Verify loads serialized catalog bytes with the gotext runtime and checks
// that every translated job resolves to its new translation. Fuzzy entries
// are not checked.
func Verify(raw []byte, jobs []Job) error {
	po := gotext.NewPo()
	po.Parse(raw)

	domain := po.GetDomain()
	plain := domain.GetTranslations()
	withCtx := domain.GetCtxTranslations()

	for _, job := range jobs {
		want := job.Entry.Translation()
		if want == "" || job.Entry.IsFuzzy() {
			continue
		}
		var tr *gotext.Translation
		if job.Context == "" {
			tr = plain[job.MsgID]
		} else {
			tr = withCtx[job.Context][job.MsgID]
		}
		if tr == nil {
			return fmt.Errorf("serialized catalog has no entry for msgid %q", job.MsgID)
		}
		if got := tr.Get(); got != want {
			return fmt.Errorf("serialized catalog does not resolve msgid %q: got %q, want %q", job.MsgID, got, want)
		}
	}
	return nil
}
