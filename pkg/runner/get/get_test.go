package get

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/mindease/pkg/entry"
	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
)

func seeded(t *testing.T) *journal.Store {
	t.Helper()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	j := journal.New(store.NewMemory(), journal.WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	}))
	for _, s := range []struct {
		text string
		m    mood.Mood
	}{{"morning run", mood.Happy}, {"long meeting", mood.Tired}, {"evening run in rain", mood.Sad}} {
		if _, err := j.Save(s.text, s.m); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	return j
}

func list(t *testing.T, g Get) []entry.Entry {
	t.Helper()
	var buf bytes.Buffer
	g.JSON = true
	g.Out = &buf
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var out []entry.Entry
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestGetNewestFirst(t *testing.T) {
	got := list(t, Get{Journal: seeded(t)})
	if len(got) != 3 || got[0].Text != "evening run in rain" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestGetFilters(t *testing.T) {
	j := seeded(t)
	if got := list(t, Get{Journal: j, Search: "RUN"}); len(got) != 2 {
		t.Fatalf("search returned %d entries", len(got))
	}
	if got := list(t, Get{Journal: j, Search: "run", Filter: mood.Happy}); len(got) != 1 || got[0].Text != "morning run" {
		t.Fatalf("search+filter returned %+v", got)
	}
	if got := list(t, Get{Journal: j, Limit: 1}); len(got) != 1 {
		t.Fatalf("limit returned %d entries", len(got))
	}
}
