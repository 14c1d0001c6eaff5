package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/logger"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/printers"
)

type Add struct {
	Journal *journal.Store
	Message string
	Mood    mood.Mood

	JSON bool
	Out  io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not add, no journal")
	}

	id, err := n.Journal.Save(n.Message, n.Mood)
	if err != nil {
		return err
	}
	logger.Debug("entry saved", "id", id, "mood", n.Mood.String())

	e, err := n.Journal.Get(id)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, e)
	}

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Title("Saved")
	pp.Entries(e)
	return nil
}
