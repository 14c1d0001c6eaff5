// Package memory is the flower memory-match game: eight pairs of cards laid
// out face down, two turned over per move, until every pair is found.
package memory

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Icons are the card faces; the deck holds each twice.
var Icons = []string{"🌸", "🌺", "🌻", "🌼", "🌷", "🌹", "🪷", "🏵️"}

const (
	// Columns is the width of the board.
	Columns = 4
	// Back is shown for a face-down card.
	Back = "❓"
	// Reveal is how long a turned pair stays face up before it is checked.
	Reveal = 800 * time.Millisecond
)

var (
	ErrOutOfRange = errors.New("memory: no such card")
	ErrFaceUp     = errors.New("memory: card is already face up")
	// ErrLocked is returned while a turned pair waits for Resolve.
	ErrLocked = errors.New("memory: wait for the open pair")
)

// Card is one position on the board.
type Card struct {
	Icon    string `json:"icon"`
	Up      bool   `json:"up"`
	Matched bool   `json:"matched"`
}

// Game is the board and its score.
type Game struct {
	Cards   []Card
	Moves   int
	Matches int

	rnd  *rand.Rand
	open []int
}

// New deals a shuffled board. r may be nil, in which case the clock seeds
// the shuffle.
func New(r *rand.Rand) *Game {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{rnd: r}
	g.Deal()
	return g
}

// Deal reshuffles the deck and resets the score.
func (g *Game) Deal() {
	cards := make([]Card, 0, 2*len(Icons))
	for i := 0; i < 2; i++ {
		for _, icon := range Icons {
			cards = append(cards, Card{Icon: icon})
		}
	}
	g.rnd.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	g.Cards = cards
	g.Moves = 0
	g.Matches = 0
	g.open = nil
}

// Flip turns card i face up. It reports true when this completes a pair,
// which counts as a move and must be followed by Resolve.
func (g *Game) Flip(i int) (bool, error) {
	if i < 0 || i >= len(g.Cards) {
		return false, ErrOutOfRange
	}
	if g.Pending() {
		return false, ErrLocked
	}
	if c := g.Cards[i]; c.Up || c.Matched {
		return false, ErrFaceUp
	}
	g.Cards[i].Up = true
	g.open = append(g.open, i)
	if len(g.open) < 2 {
		return false, nil
	}
	g.Moves++
	return true, nil
}

// Pending reports whether a turned pair is waiting for Resolve.
func (g *Game) Pending() bool {
	return len(g.open) == 2
}

// Resolve checks the open pair. Matching cards stay up; others turn back.
func (g *Game) Resolve() bool {
	if !g.Pending() {
		return false
	}
	a, b := g.open[0], g.open[1]
	g.open = nil
	if g.Cards[a].Icon == g.Cards[b].Icon {
		g.Cards[a].Matched = true
		g.Cards[b].Matched = true
		g.Matches++
		return true
	}
	g.Cards[a].Up = false
	g.Cards[b].Up = false
	return false
}

// Won reports whether every pair has been found.
func (g *Game) Won() bool {
	return g.Matches == len(Icons)
}

// WinMessage congratulates the player.
func (g *Game) WinMessage() string {
	return fmt.Sprintf("🎉 Congratulations! You won in %d moves!", g.Moves)
}

// Face is what card i currently shows.
func (g *Game) Face(i int) string {
	c := g.Cards[i]
	if c.Up || c.Matched {
		return c.Icon
	}
	return Back
}

// Score is the running "Moves: n  Matches: m" line.
func (g *Game) Score() string {
	return fmt.Sprintf("Moves: %d  Matches: %d", g.Moves, g.Matches)
}
