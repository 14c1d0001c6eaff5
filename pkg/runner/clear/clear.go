package clear

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/journal"
)

// Clear deletes every entry after confirmation.
type Clear struct {
	Journal   *journal.Store
	Confirmer journal.Confirmer
	Out       io.Writer
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not clear, no journal")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	cleared, err := n.Journal.ClearAll(n.Confirmer)
	if err != nil {
		return err
	}
	if !cleared {
		_, _ = fmt.Fprintln(out, "Nothing deleted.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "All entries deleted.")
	return nil
}
