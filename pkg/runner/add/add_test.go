package add

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tableflip.dev/mindease/pkg/entry"
	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
)

func TestAddSavesEntry(t *testing.T) {
	j := journal.New(store.NewMemory())
	var buf bytes.Buffer
	a := Add{Journal: j, Message: "  slept well  ", Mood: mood.Happy, JSON: true, Out: &buf}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	var got entry.Entry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if got.Text != "slept well" || got.Mood != mood.Happy {
		t.Fatalf("unexpected entry %+v", got)
	}
	all, _ := j.All()
	if len(all) != 1 {
		t.Fatalf("expected one stored entry, got %d", len(all))
	}
}

func TestAddRejectsEmpty(t *testing.T) {
	a := Add{Journal: journal.New(store.NewMemory()), Message: "   ", Out: &bytes.Buffer{}}
	if err := a.Do(context.Background()); !errors.Is(err, journal.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}
