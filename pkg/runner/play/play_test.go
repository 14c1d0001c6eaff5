package play

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"tableflip.dev/mindease/pkg/games/memory"
)

func TestMemoryToTheEnd(t *testing.T) {
	g := memory.New(rand.New(rand.NewSource(11)))
	at := map[string][]int{}
	for i, c := range g.Cards {
		at[c.Icon] = append(at[c.Icon], i+1)
	}

	var in strings.Builder
	// One miss, a bad token, then every pair.
	fmt.Fprintf(&in, "%d %d\n", at[memory.Icons[0]][0], at[memory.Icons[1]][0])
	in.WriteString("banana\n")
	for _, icon := range memory.Icons {
		fmt.Fprintf(&in, "%d,%d\n", at[icon][0], at[icon][1])
	}
	in.WriteString("1 2\n")

	var out bytes.Buffer
	p := Memory{Game: g, In: strings.NewReader(in.String()), Out: &out}
	if err := p.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := out.String()
	for _, want := range []string{"No match.", "Match!", `"banana" is not a card number`, "🎉 Congratulations! You won in 9 moves!"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestMemoryQuit(t *testing.T) {
	var out bytes.Buffer
	p := Memory{
		Game: memory.New(rand.New(rand.NewSource(1))),
		In:   strings.NewReader("1\n1\nquit\n"),
		Out:  &out,
	}
	if err := p.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(out.String(), "card 1: card is already face up") {
		t.Fatalf("expected a face-up warning:\n%s", out.String())
	}
	if p.Game.Moves != 0 {
		t.Fatalf("moves = %d", p.Game.Moves)
	}
}

func TestMemoryNeedsInput(t *testing.T) {
	if err := (&Memory{}).Do(context.Background()); err == nil {
		t.Fatal("expected an error without input")
	}
}
