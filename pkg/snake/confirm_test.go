package snake

import (
	"testing"

	"tableflip.dev/mindease/pkg/journal"
)

var _ journal.Confirmer = (*Prompter)(nil)

func TestParseBool(t *testing.T) {
	for _, in := range []string{"y", "Yes", "true", "1"} {
		if v, err := ParseBool(in); err != nil || !v {
			t.Errorf("ParseBool(%q) = %v, %v", in, v, err)
		}
	}
	for _, in := range []string{"n", "No", "false", "0"} {
		if v, err := ParseBool(in); err != nil || v {
			t.Errorf("ParseBool(%q) = %v, %v", in, v, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Error("expected error for maybe")
	}
}

func TestYesSkipsPrompt(t *testing.T) {
	p := &Prompter{Yes: true}
	ok, err := p.Confirm(journal.ClearPrompt)
	if err != nil || !ok {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
}
