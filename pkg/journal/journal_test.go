package journal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/mindease/pkg/entry"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
)

func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newTestStore(t *testing.T) (*Store, store.Persistence) {
	t.Helper()
	p := store.NewMemory()
	return New(p, WithClock(fixedClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)))), p
}

func mustSave(t *testing.T, s *Store, text string, m mood.Mood) int64 {
	t.Helper()
	id, err := s.Save(text, m)
	if err != nil {
		t.Fatalf("save %q: %v", text, err)
	}
	return id
}

func mustList(t *testing.T, s *Store, search string, filter mood.Mood) []entry.Entry {
	t.Helper()
	got, err := s.List(search, filter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return got
}

func TestSavePrependsAndRoundTrips(t *testing.T) {
	s, _ := newTestStore(t)
	mustSave(t, s, "first", mood.Sad)
	before := len(mustList(t, s, "", mood.Any))

	id := mustSave(t, s, "  feeling okay today ", mood.Neutral)

	all := mustList(t, s, "", mood.Any)
	if len(all) != before+1 {
		t.Fatalf("expected %d entries, got %d", before+1, len(all))
	}
	want := entry.Entry{
		ID:      id,
		Text:    "feeling okay today",
		Mood:    mood.Neutral,
		Created: all[0].Created,
	}
	if diff := cmp.Diff(want, all[0]); diff != "" {
		t.Fatalf("newest entry mismatch (-want +got):\n%s", diff)
	}
	if all[0].Created == "" {
		t.Fatal("created stamp not set")
	}
	if all[1].Text != "first" {
		t.Fatalf("expected older entry second, got %q", all[1].Text)
	}
}

func TestSaveRejectsBlankText(t *testing.T) {
	s, p := newTestStore(t)
	mustSave(t, s, "kept", mood.Happy)
	if err := s.SetDraft("draft survives"); err != nil {
		t.Fatalf("set draft: %v", err)
	}

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := s.Save(text, mood.Happy); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("Save(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
	if got := len(mustList(t, s, "", mood.Any)); got != 1 {
		t.Fatalf("expected count unchanged at 1, got %d", got)
	}
	if v, ok, _ := p.Get(store.KeyDraft); !ok || v != "draft survives" {
		t.Fatalf("draft changed on failed save: %q, %v", v, ok)
	}
}

func TestSaveClearsDraftAndNotifies(t *testing.T) {
	s, p := newTestStore(t)
	calls := 0
	s.OnChange(func() { calls++ })

	if err := s.SetDraft("almost"); err != nil {
		t.Fatalf("set draft: %v", err)
	}
	mustSave(t, s, "almost done", mood.Tired)

	if _, ok, _ := p.Get(store.KeyDraft); ok {
		t.Fatal("draft should be cleared after save")
	}
	if calls != 1 {
		t.Fatalf("expected one refresh, got %d", calls)
	}
}

func TestIDsAreUniqueAndIncreasing(t *testing.T) {
	p := store.NewMemory()
	frozen := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	s := New(p, WithClock(func() time.Time { return frozen }))

	seen := map[int64]bool{}
	var last int64
	for i := 0; i < 5; i++ {
		id := mustSave(t, s, "same instant", mood.Any)
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		if id <= last {
			t.Fatalf("id %d not greater than %d", id, last)
		}
		seen[id] = true
		last = id
	}
}

func TestListFilters(t *testing.T) {
	s, _ := newTestStore(t)
	mustSave(t, s, "Walked the dog", mood.Happy)
	mustSave(t, s, "rough meeting", mood.Angry)
	mustSave(t, s, "another walk", mood.Sad)

	texts := func(es []entry.Entry) []string {
		out := make([]string, 0, len(es))
		for _, e := range es {
			out = append(out, e.Text)
		}
		return out
	}

	tests := []struct {
		name   string
		search string
		filter mood.Mood
		want   []string
	}{
		{"everything newest first", "", mood.Any, []string{"another walk", "rough meeting", "Walked the dog"}},
		{"case insensitive", "WALK", mood.Any, []string{"another walk", "Walked the dog"}},
		{"mood only", "", mood.Angry, []string{"rough meeting"}},
		{"search and mood", "walk", mood.Happy, []string{"Walked the dog"}},
		{"no match", "ocean", mood.Any, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(mustList(t, s, tt.search, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("list mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListSearchIsSubsetOfAll(t *testing.T) {
	s, _ := newTestStore(t)
	mustSave(t, s, "alpha", mood.Happy)
	mustSave(t, s, "beta", mood.Sad)
	mustSave(t, s, "alphabet", mood.Any)

	all := mustList(t, s, "", mood.Any)
	ids := map[int64]bool{}
	for _, e := range all {
		ids[e.ID] = true
	}
	for _, term := range []string{"a", "alpha", "bet", "5/1/2024", "zzz"} {
		for _, e := range mustList(t, s, term, mood.Any) {
			if !ids[e.ID] {
				t.Fatalf("term %q returned entry %d outside the full list", term, e.ID)
			}
		}
	}
}

func TestSearchMatchesCreatedStamp(t *testing.T) {
	s, _ := newTestStore(t)
	mustSave(t, s, "morning pages", mood.Neutral)
	got := mustList(t, s, "5/1/2024", mood.Any)
	if len(got) != 1 {
		t.Fatalf("expected created stamp match, got %d entries", len(got))
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	keep := mustSave(t, s, "keep", mood.Happy)
	drop := mustSave(t, s, "drop", mood.Sad)

	if err := s.Delete(drop); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(drop); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := s.Delete(12345); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	all := mustList(t, s, "", mood.Any)
	if len(all) != 1 || all[0].ID != keep {
		t.Fatalf("unexpected entries after delete: %+v", all)
	}
}

func TestBeginEditKeepsEntryAndUpdateReplacesInPlace(t *testing.T) {
	s, _ := newTestStore(t)
	older := mustSave(t, s, "older", mood.Neutral)
	mustSave(t, s, "newer", mood.Happy)

	got, err := s.BeginEdit(older)
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if got.Text != "older" || got.Mood != mood.Neutral {
		t.Fatalf("unexpected prefill %+v", got)
	}
	// Abandoning the edit must not lose the entry.
	if n := len(mustList(t, s, "", mood.Any)); n != 2 {
		t.Fatalf("begin edit changed the store: %d entries", n)
	}

	updated, err := s.Update(older, " older, revised ", mood.Sad)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := entry.Entry{ID: older, Text: "older, revised", Mood: mood.Sad, Created: got.Created}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("update result mismatch (-want +got):\n%s", diff)
	}
	all := mustList(t, s, "", mood.Any)
	if all[1].ID != older || all[1].Text != "older, revised" {
		t.Fatalf("update moved or missed the entry: %+v", all)
	}
}

func TestEditErrors(t *testing.T) {
	s, _ := newTestStore(t)
	id := mustSave(t, s, "original", mood.Happy)

	if _, err := s.BeginEdit(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("begin edit unknown: %v", err)
	}
	if _, err := s.Update(99, "text", mood.Happy); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update unknown: %v", err)
	}
	if _, err := s.Update(id, "  ", mood.Happy); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("update blank: %v", err)
	}
	e, err := s.Get(id)
	if err != nil || e.Text != "original" {
		t.Fatalf("entry changed by failed update: %+v, %v", e, err)
	}
}

func TestClearAllRequiresConfirmation(t *testing.T) {
	s, _ := newTestStore(t)
	mustSave(t, s, "one", mood.Happy)
	mustSave(t, s, "two", mood.Sad)

	var asked string
	decline := ConfirmFunc(func(prompt string) (bool, error) {
		asked = prompt
		return false, nil
	})
	cleared, err := s.ClearAll(decline)
	if err != nil || cleared {
		t.Fatalf("declined clear = %v, %v", cleared, err)
	}
	if asked != ClearPrompt {
		t.Fatalf("unexpected prompt %q", asked)
	}
	if n := len(mustList(t, s, "", mood.Any)); n != 2 {
		t.Fatalf("declined clear removed entries: %d left", n)
	}

	accept := ConfirmFunc(func(string) (bool, error) { return true, nil })
	cleared, err = s.ClearAll(accept)
	if err != nil || !cleared {
		t.Fatalf("accepted clear = %v, %v", cleared, err)
	}
	if n := len(mustList(t, s, "", mood.Any)); n != 0 {
		t.Fatalf("expected empty journal, got %d", n)
	}

	if _, err := s.ClearAll(nil); err == nil {
		t.Fatal("clear without a confirmer should fail")
	}
}

func TestClearAllPropagatesConfirmError(t *testing.T) {
	s, _ := newTestStore(t)
	mustSave(t, s, "one", mood.Happy)
	boom := errors.New("no tty")
	_, err := s.ClearAll(ConfirmFunc(func(string) (bool, error) { return false, boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("expected confirm error, got %v", err)
	}
}

type failingPersistence struct {
	store.Persistence
	err error
}

func (f failingPersistence) Set(string, string) error { return f.err }

func TestStorageFailurePropagates(t *testing.T) {
	quota := errors.New("quota exceeded")
	s := New(failingPersistence{Persistence: store.NewMemory(), err: quota})
	if _, err := s.Save("hello", mood.Happy); !errors.Is(err, quota) {
		t.Fatalf("expected quota error, got %v", err)
	}
}

type stuckDraft struct {
	store.Persistence
}

func (p stuckDraft) Remove(key string) error {
	if key == store.KeyDraft {
		return errors.New("draft is read-only")
	}
	return p.Persistence.Remove(key)
}

func TestDraftClearFailureKeepsSave(t *testing.T) {
	s := New(stuckDraft{store.NewMemory()})
	id, err := s.Save("stored anyway", mood.Happy)
	if err != nil {
		t.Fatalf("save reported the draft failure: %v", err)
	}
	if _, err := s.Update(id, "updated anyway", mood.Sad); err != nil {
		t.Fatalf("update reported the draft failure: %v", err)
	}
	e, err := s.Get(id)
	if err != nil || e.Text != "updated anyway" {
		t.Fatalf("entry = %+v, %v", e, err)
	}
}

func TestUnknownMoodIsRejected(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.Save("thinking", mood.Mood("🤔")); !errors.Is(err, ErrUnknownMood) {
		t.Fatalf("save: expected ErrUnknownMood, got %v", err)
	}
	if n := len(mustList(t, s, "", mood.Any)); n != 0 {
		t.Fatalf("rejected save stored %d entries", n)
	}

	id := mustSave(t, s, "plain", "")
	if _, err := s.Update(id, "plain", mood.Mood("bogus")); !errors.Is(err, ErrUnknownMood) {
		t.Fatalf("update: expected ErrUnknownMood, got %v", err)
	}
	e, _ := s.Get(id)
	if e.Mood != mood.Any {
		t.Fatalf("blank mood should be stored as any, got %q", e.Mood)
	}
}

func TestCorruptStorageIsAnError(t *testing.T) {
	p := store.NewMemory()
	if err := p.Set(store.KeyJournals, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := New(p)
	if _, err := s.List("", mood.Any); err == nil || !strings.Contains(err.Error(), store.KeyJournals) {
		t.Fatalf("expected decode error naming the key, got %v", err)
	}
}

func TestReadsOriginalLayout(t *testing.T) {
	p := store.NewMemory()
	raw := `[{"id":1714554000000,"text":"from the browser","mood":"😢","created":"5/1/2024, 9:00:00 AM"},` +
		`{"id":1714550000000,"text":"older","mood":"any","created":"5/1/2024, 7:53:20 AM"}]`
	if err := p.Set(store.KeyJournals, raw); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := New(p)
	got := mustList(t, s, "", mood.Sad)
	if len(got) != 1 || got[0].Text != "from the browser" {
		t.Fatalf("unexpected entries %+v", got)
	}
	if _, err := s.Save("new one", mood.Happy); err != nil {
		t.Fatalf("save: %v", err)
	}
	all := mustList(t, s, "", mood.Any)
	if all[0].ID <= 1714554000000 {
		t.Fatalf("new id %d should be above existing ids", all[0].ID)
	}
}

func TestWatchSeesSave(t *testing.T) {
	s, p := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	mustSave(t, s, "observed", mood.Happy)
	select {
	case ev := <-ch:
		if ev.Key != store.KeyJournals {
			t.Fatalf("unexpected key %q", ev.Key)
		}
	case <-time.After(time.Second):
		t.Fatal("no change event after save")
	}
}
