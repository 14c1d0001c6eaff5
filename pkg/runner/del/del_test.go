package del

import (
	"bytes"
	"context"
	"testing"

	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
)

func TestDeleteByID(t *testing.T) {
	j := journal.New(store.NewMemory())
	keep, _ := j.Save("keep", mood.Happy)
	drop, _ := j.Save("drop", mood.Sad)

	var buf bytes.Buffer
	d := Delete{Journal: j, IDs: []int64{drop, 42}, Out: &buf}
	if err := d.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	all, _ := j.All()
	if len(all) != 1 || all[0].ID != keep {
		t.Fatalf("unexpected journal %+v", all)
	}
}

func TestDeleteNeedsJournal(t *testing.T) {
	d := Delete{IDs: []int64{1}, Out: &bytes.Buffer{}}
	if err := d.Do(context.Background()); err == nil {
		t.Fatal("expected an error without a journal")
	}
}
