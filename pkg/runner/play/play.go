package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindease/pkg/games/memory"
)

// Memory plays the memory-match game on a line terminal. Each line names
// cards to turn over by their board number; a completed pair is checked
// before the next one.
type Memory struct {
	Game *memory.Game
	In   io.Reader
	Out  io.Writer
}

func (n *Memory) Do(ctx context.Context) error {
	if n.In == nil {
		return errors.New("memory needs an input stream")
	}
	if n.Game == nil {
		n.Game = memory.New(nil)
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	g := n.Game
	faint := color.New(color.Faint)
	good := color.New(color.FgGreen)

	_, _ = faint.Fprintln(out, "Turn two cards by number, for example: 1 6. Type quit to leave.")
	n.board(out)

	lines := bufio.NewScanner(n.In)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		_, _ = fmt.Fprint(out, "> ")
		if !lines.Scan() {
			_, _ = fmt.Fprintln(out, "")
			return lines.Err()
		}
		text := strings.TrimSpace(lines.Text())
		switch strings.ToLower(text) {
		case "quit", "exit":
			return nil
		case "":
			continue
		}

		for _, f := range strings.FieldsFunc(text, func(r rune) bool { return r == ' ' || r == ',' }) {
			i, err := strconv.Atoi(f)
			if err != nil {
				_, _ = fmt.Fprintf(out, "%q is not a card number\n", f)
				break
			}
			pair, err := g.Flip(i - 1)
			if err != nil {
				_, _ = fmt.Fprintf(out, "card %d: %s\n", i, strings.TrimPrefix(err.Error(), "memory: "))
				continue
			}
			if !pair {
				continue
			}
			n.board(out)
			if g.Resolve() {
				_, _ = good.Fprintln(out, "Match!")
			} else {
				_, _ = faint.Fprintln(out, "No match.")
			}
			if g.Won() {
				_, _ = fmt.Fprintln(out, g.WinMessage())
				return nil
			}
		}
		n.board(out)
	}
}

func (n *Memory) board(out io.Writer) {
	g := n.Game
	tbl := uitable.New()
	tbl.Separator = "  "
	row := make([]interface{}, 0, memory.Columns)
	for i := range g.Cards {
		row = append(row, fmt.Sprintf("%2d %s", i+1, g.Face(i)))
		if len(row) == memory.Columns {
			tbl.AddRow(row...)
			row = row[:0]
		}
	}
	if len(row) > 0 {
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = color.New(color.Faint).Fprintln(out, g.Score())
}
