package edit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
)

func TestEditKeepsUnsetFields(t *testing.T) {
	j := journal.New(store.NewMemory())
	id, err := j.Save("rough day", mood.Sad)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	before, _ := j.Get(id)

	e := Edit{Journal: j, ID: id, Mood: mood.Neutral, Out: &bytes.Buffer{}}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	after, _ := j.Get(id)
	if after.Text != "rough day" || after.Mood != mood.Neutral {
		t.Fatalf("unexpected entry %+v", after)
	}
	if after.Created != before.Created {
		t.Fatalf("created changed: %q -> %q", before.Created, after.Created)
	}
}

func TestEditUnknownID(t *testing.T) {
	e := Edit{Journal: journal.New(store.NewMemory()), ID: 42, Message: "x", Out: &bytes.Buffer{}}
	if err := e.Do(context.Background()); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
