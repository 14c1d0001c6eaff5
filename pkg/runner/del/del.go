package del

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/logger"
)

// Delete removes entries by id. Unknown ids are ignored.
type Delete struct {
	Journal *journal.Store
	IDs     []int64
	Out     io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not delete, no journal")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	for _, id := range n.IDs {
		if err := n.Journal.Delete(id); err != nil {
			return err
		}
		logger.Debug("entry deleted", "id", id)
		_, _ = fmt.Fprintf(out, "deleted %d\n", id)
	}
	return nil
}
