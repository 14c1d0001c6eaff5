// Package journal owns the persisted, newest-first sequence of journal
// entries and the unsaved draft.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/mindease/pkg/entry"
	"tableflip.dev/mindease/pkg/logger"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
)

var (
	// ErrEmptyText is returned when the submitted text is blank.
	ErrEmptyText = errors.New("journal: please write something first")
	// ErrNotFound is returned when no entry has the requested id.
	ErrNotFound = errors.New("journal: entry not found")
	// ErrUnknownMood is returned for a mood tag outside the vocabulary.
	ErrUnknownMood = errors.New("journal: unknown mood")
)

// Confirmer gates destructive operations behind an explicit yes.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// ClearPrompt is shown before every entry is deleted.
const ClearPrompt = "Delete all journal entries? This cannot be undone."

// Store is the journal. Every mutation reads the full sequence, changes it
// and writes it back as one value.
type Store struct {
	Persistence store.Persistence

	mu        sync.Mutex
	now       func() time.Time
	listeners []func()
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a journal backed by p.
func New(p store.Persistence, opts ...Option) *Store {
	s := &Store{Persistence: p, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OnChange registers fn to run after every successful mutation.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func checkMood(m mood.Mood) (mood.Mood, error) {
	if m == "" {
		return mood.Any, nil
	}
	if !m.Known() {
		return "", fmt.Errorf("%w %q", ErrUnknownMood, string(m))
	}
	return m, nil
}

// clearDraft drops the draft after an entry was stored. The entry is already
// persisted, so a failure here is logged rather than returned.
func (s *Store) clearDraft() {
	if err := s.Persistence.Remove(store.KeyDraft); err != nil {
		logger.Warn("clear draft after save", "err", err)
	}
}

// Save validates text, prepends a new entry and clears the draft.
func (s *Store) Save(text string, m mood.Mood) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}
	m, err := checkMood(m)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	all, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	now := s.now()
	e := entry.New(text, m, now)
	e.ID = entry.NextID(now, entry.MaxID(all))
	all = append([]entry.Entry{e}, all...)
	if err := s.persist(all); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.clearDraft()
	s.mu.Unlock()

	s.changed()
	return e.ID, nil
}

// All returns every stored entry, newest first.
func (s *Store) All() ([]entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// List returns the entries matching search and filter in stored order.
func (s *Store) List(search string, filter mood.Mood) ([]entry.Entry, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	out := make([]entry.Entry, 0, len(all))
	for _, e := range all {
		if e.Matches(search, filter) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Get returns the entry with id.
func (s *Store) Get(id int64) (entry.Entry, error) {
	all, err := s.All()
	if err != nil {
		return entry.Entry{}, err
	}
	if i := indexOf(all, id); i >= 0 {
		return all[i], nil
	}
	return entry.Entry{}, ErrNotFound
}

// BeginEdit returns the entry to pre-fill an edit form. The stored entry is
// left untouched until Update commits the replacement.
func (s *Store) BeginEdit(id int64) (entry.Entry, error) {
	return s.Get(id)
}

// Update replaces the text and mood of an entry in place, keeping its id,
// created stamp and position.
func (s *Store) Update(id int64, text string, m mood.Mood) (entry.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entry.Entry{}, ErrEmptyText
	}
	m, err := checkMood(m)
	if err != nil {
		return entry.Entry{}, err
	}

	s.mu.Lock()
	all, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return entry.Entry{}, err
	}
	i := indexOf(all, id)
	if i < 0 {
		s.mu.Unlock()
		return entry.Entry{}, ErrNotFound
	}
	all[i].Text = text
	all[i].Mood = m
	if err := s.persist(all); err != nil {
		s.mu.Unlock()
		return entry.Entry{}, err
	}
	s.clearDraft()
	updated := all[i]
	s.mu.Unlock()

	s.changed()
	return updated, nil
}

// Delete removes the entry with id. Deleting an unknown id is a no-op.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	all, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	kept := all[:0]
	for _, e := range all {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if err := s.persist(kept); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.changed()
	return nil
}

// ClearAll deletes every entry once c confirms. It reports whether the
// journal was cleared.
func (s *Store) ClearAll(c Confirmer) (bool, error) {
	if c == nil {
		return false, errors.New("journal: clear requires confirmation")
	}
	ok, err := c.Confirm(ClearPrompt)
	if err != nil || !ok {
		return false, err
	}

	s.mu.Lock()
	if err := s.Persistence.Remove(store.KeyJournals); err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("journal: clear: %w", err)
	}
	s.mu.Unlock()

	s.changed()
	return true, nil
}

// Draft returns the autosaved draft, or "" when there is none.
func (s *Store) Draft() (string, error) {
	v, _, err := s.Persistence.Get(store.KeyDraft)
	if err != nil {
		return "", fmt.Errorf("journal: read draft: %w", err)
	}
	return v, nil
}

// SetDraft stores the in-progress text.
func (s *Store) SetDraft(text string) error {
	if err := s.Persistence.Set(store.KeyDraft, text); err != nil {
		return fmt.Errorf("journal: write draft: %w", err)
	}
	return nil
}

// ClearDraft drops the draft.
func (s *Store) ClearDraft() error {
	if err := s.Persistence.Remove(store.KeyDraft); err != nil {
		return fmt.Errorf("journal: clear draft: %w", err)
	}
	return nil
}

// load must be called with mu held.
func (s *Store) load() ([]entry.Entry, error) {
	raw, ok, err := s.Persistence.Get(store.KeyJournals)
	if err != nil {
		return nil, fmt.Errorf("journal: load: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []entry.Entry{}, nil
	}
	var all []entry.Entry
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("journal: decode %s: %w", store.KeyJournals, err)
	}
	if all == nil {
		all = []entry.Entry{}
	}
	return all, nil
}

// persist must be called with mu held.
func (s *Store) persist(all []entry.Entry) error {
	if all == nil {
		all = []entry.Entry{}
	}
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("journal: encode: %w", err)
	}
	if err := s.Persistence.Set(store.KeyJournals, string(data)); err != nil {
		return fmt.Errorf("journal: persist: %w", err)
	}
	return nil
}

func (s *Store) changed() {
	s.mu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func indexOf(all []entry.Entry, id int64) int {
	for i, e := range all {
		if e.ID == id {
			return i
		}
	}
	return -1
}
