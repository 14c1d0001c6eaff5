package edit

import (
	"context"
	"errors"
	"io"
	"strings"

	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/printers"
)

// Edit replaces the text and mood of an existing entry. Empty Message and
// Mood keep the stored values.
type Edit struct {
	Journal *journal.Store
	ID      int64
	Message string
	Mood    mood.Mood

	JSON bool
	Out  io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not edit, no journal")
	}
	current, err := n.Journal.BeginEdit(n.ID)
	if err != nil {
		return err
	}

	text := n.Message
	if strings.TrimSpace(text) == "" {
		text = current.Text
	}
	m := n.Mood
	if m == "" {
		m = current.Mood
	}

	e, err := n.Journal.Update(n.ID, text, m)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, e)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Title("Updated")
	pp.Entries(e)
	return nil
}
