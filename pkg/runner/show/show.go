package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/printers"
)

type Show struct {
	Journal *journal.Store
	ID      int64

	JSON bool
	Out  io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not show, no journal")
	}
	e, err := n.Journal.Get(n.ID)
	if err != nil {
		return fmt.Errorf("entry %d: %w", n.ID, err)
	}
	if n.JSON {
		return printers.JSON(n.Out, e)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Detail(e)
	return nil
}
