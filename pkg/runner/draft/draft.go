package draft

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/journal"
)

// Action selects what Draft does.
type Action string

const (
	Show  Action = "show"
	Set   Action = "set"
	Clear Action = "clear"
)

// Draft reads or changes the autosaved, uncommitted journal text.
type Draft struct {
	Journal *journal.Store
	Action  Action
	Text    string
	Out     io.Writer
}

func (n *Draft) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not use draft, no journal")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	switch n.Action {
	case "", Show:
		text, err := n.Journal.Draft()
		if err != nil {
			return err
		}
		if text == "" {
			f := color.New(color.Faint, color.Italic)
			_, _ = f.Fprintln(out, "no draft")
			return nil
		}
		_, _ = fmt.Fprintln(out, text)
	case Set:
		if err := n.Journal.SetDraft(n.Text); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, journal.StatusSaved)
	case Clear:
		if err := n.Journal.ClearDraft(); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, journal.StatusNotSaved)
	default:
		return fmt.Errorf("unknown draft action %q", n.Action)
	}
	return nil
}
