package draft

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/store"
)

func TestDraftLifecycle(t *testing.T) {
	color.NoColor = true
	j := journal.New(store.NewMemory())
	var buf bytes.Buffer
	run := func(a Action, text string) string {
		t.Helper()
		buf.Reset()
		d := Draft{Journal: j, Action: a, Text: text, Out: &buf}
		if err := d.Do(context.Background()); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
		return strings.TrimSpace(buf.String())
	}

	if got := run(Show, ""); got != "no draft" {
		t.Fatalf("empty draft shown as %q", got)
	}
	if got := run(Set, "half a thought"); got != journal.StatusSaved.String() {
		t.Fatalf("set printed %q", got)
	}
	if got := run(Show, ""); got != "half a thought" {
		t.Fatalf("draft = %q", got)
	}
	run(Clear, "")
	if got, _ := j.Draft(); got != "" {
		t.Fatalf("draft not cleared: %q", got)
	}
}

func TestDraftUnknownAction(t *testing.T) {
	d := Draft{Journal: journal.New(store.NewMemory()), Action: "burn", Out: &bytes.Buffer{}}
	if err := d.Do(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
