// Package app holds the view state shared by every front end: the journal,
// the analytics view over it, the draft autosaver, the active tab and the
// current list filter. One Session is built at startup and handed to the
// handlers that need it.
package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/mindease/pkg/analytics"
	"tableflip.dev/mindease/pkg/chat"
	"tableflip.dev/mindease/pkg/entry"
	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/logger"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/store"
)

// Tab names the screens of the application.
type Tab string

const (
	TabHome     Tab = "home"
	TabJournal  Tab = "journal"
	TabAnalysis Tab = "analysis"
	TabMeditate Tab = "meditate"
	TabBreathe  Tab = "breathe"
	TabMemory   Tab = "memory"
	TabChat     Tab = "chat"
)

// Tabs lists the screens in display order.
func Tabs() []Tab {
	return []Tab{TabHome, TabJournal, TabAnalysis, TabMeditate, TabBreathe, TabMemory, TabChat}
}

// ParseTab resolves a tab name.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tabs() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Snapshot is what the journal and analysis screens render.
type Snapshot struct {
	Entries []entry.Entry
	Summary analytics.Summary
}

// Session is the application view state.
type Session struct {
	Persistence store.Persistence
	Journal     *journal.Store
	Analytics   *analytics.View
	Autosaver   *journal.Autosaver
	Companion   *chat.Companion

	mu     sync.Mutex
	tab    Tab
	search string
	filter mood.Mood
	// summary caches the analytics until the journal changes.
	summary *analytics.Summary
}

// Options configures NewSession.
type Options struct {
	AutosaveDelay time.Duration
	// OnAutosave observes draft autosave status changes.
	OnAutosave func(journal.Status, error)
	Clock      func() time.Time
}

// NewSession wires a session over p.
func NewSession(p store.Persistence, o Options) *Session {
	var jopts []journal.Option
	if o.Clock != nil {
		jopts = append(jopts, journal.WithClock(o.Clock))
	}
	j := journal.New(p, jopts...)
	s := &Session{
		Persistence: p,
		Journal:     j,
		Analytics:   &analytics.View{Source: j, Now: o.Clock},
		Companion:   chat.New(),
		tab:         TabHome,
		filter:      mood.Any,
	}
	j.OnChange(s.Invalidate)
	s.Autosaver = journal.NewAutosaver(j, o.AutosaveDelay, func(st journal.Status, err error) {
		if err != nil {
			logger.Warn("autosave failed", "err", err)
		}
		if o.OnAutosave != nil {
			o.OnAutosave(st, err)
		}
	})
	return s
}

// Tab returns the active tab.
func (s *Session) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// OpenTab switches screens. Opening the journal or analysis screen reloads
// what it shows; the returned snapshot is empty for other screens.
func (s *Session) OpenTab(t Tab) (Snapshot, error) {
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()

	switch t {
	case TabJournal, TabAnalysis:
		return s.Refresh()
	default:
		return Snapshot{}, nil
	}
}

// SetFilter changes the list search term and mood filter.
func (s *Session) SetFilter(search string, filter mood.Mood) {
	if filter == "" {
		filter = mood.Any
	}
	s.mu.Lock()
	s.search = search
	s.filter = filter
	s.mu.Unlock()
}

// Filter returns the current search term and mood filter.
func (s *Session) Filter() (string, mood.Mood) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search, s.filter
}

// Invalidate drops the cached analytics. The journal calls it after every
// mutation; front ends call it when the store changed underneath them.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.summary = nil
	s.mu.Unlock()
}

// Refresh re-reads the journal through the current filter. The analytics
// over the whole journal are recomputed only after a change.
func (s *Session) Refresh() (Snapshot, error) {
	search, filter := s.Filter()
	entries, err := s.Journal.List(search, filter)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	cached := s.summary
	s.mu.Unlock()
	if cached != nil {
		return Snapshot{Entries: entries, Summary: *cached}, nil
	}

	summary, err := s.Analytics.Summary()
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	s.summary = &summary
	s.mu.Unlock()
	return Snapshot{Entries: entries, Summary: summary}, nil
}

// Commit saves the composed text as a new entry, or as the replacement for
// editing when it is non-zero, and resets the autosave indicator. Pending
// draft writes are cancelled first so none can land after the save clears
// the draft; a failed new-entry commit schedules the draft again.
func (s *Session) Commit(editing int64, text string, m mood.Mood) (int64, error) {
	s.Autosaver.Cancel()

	var (
		id  int64
		err error
	)
	if editing != 0 {
		var e entry.Entry
		e, err = s.Journal.Update(editing, text, m)
		id = e.ID
	} else {
		id, err = s.Journal.Save(text, m)
	}
	if err != nil {
		if editing == 0 && strings.TrimSpace(text) != "" {
			s.Autosaver.Input(text)
		}
		return 0, err
	}
	logger.Info("entry committed", "id", id, "edit", editing != 0)
	return id, nil
}

// Theme is the persisted appearance preference.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme resolves a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeAuto:
		return ThemeAuto, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q (expected auto, dark or light)", s)
}

// Theme reads the stored preference.
func (s *Session) Theme() (Theme, error) {
	v, ok, err := s.Persistence.Get(store.KeyDark)
	if err != nil {
		return ThemeAuto, err
	}
	if !ok {
		return ThemeAuto, nil
	}
	switch v {
	case "1":
		return ThemeDark, nil
	case "0":
		return ThemeLight, nil
	}
	return ThemeAuto, nil
}

// SetTheme stores the preference; auto removes it.
func (s *Session) SetTheme(t Theme) error {
	switch t {
	case ThemeDark:
		return s.Persistence.Set(store.KeyDark, "1")
	case ThemeLight:
		return s.Persistence.Set(store.KeyDark, "0")
	case ThemeAuto:
		return s.Persistence.Remove(store.KeyDark)
	}
	return errors.New("app: unknown theme")
}
