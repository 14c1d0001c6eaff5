package entry

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/mindease/pkg/mood"
)

// Entry is one journal record. The JSON layout is the persisted format.
type Entry struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Mood    mood.Mood `json:"mood"`
	Created string    `json:"created"`
}

// New builds an entry stamped with now. The caller assigns the ID.
func New(text string, m mood.Mood, now time.Time) Entry {
	if m == "" {
		m = mood.Any
	}
	return Entry{
		Text:    strings.TrimSpace(text),
		Mood:    m,
		Created: FormatCreated(now),
	}
}

// CreatedAt recovers the creation instant from the id, which is derived
// from the creation time in milliseconds.
func (e Entry) CreatedAt() time.Time {
	return time.UnixMilli(e.ID)
}

// Matches reports whether the entry passes a search term and mood filter.
// The search is case-insensitive over the text and the created stamp.
func (e Entry) Matches(search string, filter mood.Mood) bool {
	if !e.Mood.Matches(filter) {
		return false
	}
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.Text), needle) ||
		strings.Contains(strings.ToLower(e.Created), needle)
}

// Meta is the "mood • created" caption shown under an entry.
func (e Entry) Meta() string {
	return fmt.Sprintf("%s • %s", e.Mood.String(), e.Created)
}

func (e Entry) String() string {
	return fmt.Sprintf("%d %s  %s", e.ID, e.Mood.String(), e.Text)
}
