// Package mood defines the fixed mood vocabulary journal entries are tagged with.
package mood

import (
	"fmt"
	"strings"
)

// Mood is a mood tag as persisted on an entry. Known moods persist as their
// symbol; Any is both the unset tag and the wildcard filter.
type Mood string

const (
	Happy   Mood = "😊"
	Neutral Mood = "😐"
	Tired   Mood = "😴"
	Sad     Mood = "😢"
	Angry   Mood = "😡"
	Any     Mood = "any"
)

// Glyph describes one entry of the vocabulary.
type Glyph struct {
	Mood    Mood
	Noun    string
	Meaning string
	Score   float64
	Scored  bool
	Aliases []string
}

// DefaultMoods returns the vocabulary ordered from best to worst, followed
// by the unset tag.
func DefaultMoods() []Glyph {
	return []Glyph{{
		Mood:    Happy,
		Noun:    "happy",
		Meaning: "feeling good",
		Score:   5,
		Scored:  true,
		Aliases: []string{"happy", "good", "great", ":)"},
	}, {
		Mood:    Neutral,
		Noun:    "neutral",
		Meaning: "doing okay",
		Score:   3,
		Scored:  true,
		Aliases: []string{"neutral", "okay", "ok", "meh"},
	}, {
		Mood:    Tired,
		Noun:    "tired",
		Meaning: "low energy",
		Score:   2,
		Scored:  true,
		Aliases: []string{"tired", "sleepy"},
	}, {
		Mood:    Sad,
		Noun:    "sad",
		Meaning: "feeling down",
		Score:   1,
		Scored:  true,
		Aliases: []string{"sad", "down", ":("},
	}, {
		Mood:    Angry,
		Noun:    "angry",
		Meaning: "frustrated or upset",
		Score:   0,
		Scored:  true,
		Aliases: []string{"angry", "mad", "upset"},
	}, {
		Mood:    Any,
		Noun:    "any",
		Meaning: "no mood set",
		Aliases: []string{"any", "none", "unset", "all"},
	}}
}

var scores = func() map[Mood]float64 {
	m := make(map[Mood]float64)
	for _, g := range DefaultMoods() {
		if g.Scored {
			m[g.Mood] = g.Score
		}
	}
	return m
}()

// Known reports whether m is part of the vocabulary, including Any.
func (m Mood) Known() bool {
	_, ok := m.Glyph()
	return ok
}

// IsSet reports whether m carries an actual mood rather than the unset tag.
func (m Mood) IsSet() bool {
	return m != Any && m != ""
}

// Score maps a mood onto the 0-5 scale. ok is false for Any and for tags
// outside the vocabulary.
func (m Mood) Score() (score float64, ok bool) {
	score, ok = scores[m]
	return
}

// Glyph returns the vocabulary entry for m.
func (m Mood) Glyph() (Glyph, bool) {
	for _, g := range DefaultMoods() {
		if g.Mood == m {
			return g, true
		}
	}
	return Glyph{}, false
}

// Matches reports whether an entry tagged m passes filter.
func (m Mood) Matches(filter Mood) bool {
	return filter == Any || m == filter
}

func (m Mood) String() string {
	if m == "" {
		return string(Any)
	}
	return string(m)
}

// Parse resolves a symbol, noun, or alias to a Mood. The empty string is Any.
func Parse(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Any, nil
	}
	lower := strings.ToLower(s)
	for _, g := range DefaultMoods() {
		if string(g.Mood) == s || g.Noun == lower {
			return g.Mood, nil
		}
		for _, a := range g.Aliases {
			if a == lower {
				return g.Mood, nil
			}
		}
	}
	return Any, fmt.Errorf("unknown mood %q", s)
}

// Nouns lists the canonical names, suitable for flag completion.
func Nouns() []string {
	moods := DefaultMoods()
	out := make([]string, 0, len(moods))
	for _, g := range moods {
		out = append(out, g.Noun)
	}
	return out
}
