// Package key prints the mood legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindease/pkg/analytics"
	"tableflip.dev/mindease/pkg/mood"
)

// Key prints every mood with its score and aliases.
type Key struct {
	Out io.Writer
}

// Do renders the mood table.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mood"), bold.Sprint("Name"), bold.Sprint("Score"), bold.Sprint("Meaning"))
	for _, g := range mood.DefaultMoods() {
		score := "-"
		if g.Scored {
			score = analytics.FormatAverage(g.Score)
		}
		tbl.AddRow(g.Mood.String(), g.Noun, score, g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
