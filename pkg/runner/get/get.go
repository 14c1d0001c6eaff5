package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/printers"
)

// Get lists journal entries, newest first.
type Get struct {
	Journal *journal.Store
	Search  string
	Filter  mood.Mood
	ShowID  bool
	Limit   int

	JSON bool
	Out  io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not get, no journal")
	}
	filter := n.Filter
	if filter == "" {
		filter = mood.Any
	}

	all, err := n.Journal.List(n.Search, filter)
	if err != nil {
		return err
	}
	if n.Limit > 0 && len(all) > n.Limit {
		all = all[:n.Limit]
	}

	if n.JSON {
		return printers.JSON(n.Out, all)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.TitleWithCount("Journal", len(all))
	pp.NewLine()
	pp.Entries(all...)
	return nil
}
