package stats

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mindease/pkg/analytics"
	"tableflip.dev/mindease/pkg/printers"
	"tableflip.dev/mindease/pkg/tui/theme"
)

// Stats prints the mood distribution chart and the insight line.
type Stats struct {
	View *analytics.View
	// Label names the window in the title, "all" for the whole journal.
	Label string
	Plain bool
	Theme theme.Theme

	JSON bool
	Out  io.Writer
}

type report struct {
	Window string `json:"window"`
	analytics.Summary
	Insight string `json:"insight"`
}

func (n *Stats) Do(ctx context.Context) error {
	if n.View == nil {
		return errors.New("can not compute stats, no journal")
	}
	s, err := n.View.Summary()
	if err != nil {
		return err
	}
	label := n.Label
	if label == "" {
		label = "all"
	}
	if n.JSON {
		return printers.JSON(n.Out, report{Window: label, Summary: s, Insight: s.Insight()})
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title("Mood distribution (" + label + ")")
	pp.NewLine()
	c := printers.Chart{Out: n.Out, Plain: n.Plain, Theme: n.Theme}
	c.Print(s)
	return nil
}
