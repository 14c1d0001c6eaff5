package survey

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"tableflip.dev/mindease/pkg/printers"
	"tableflip.dev/mindease/pkg/survey"
)

// Chooser picks an answer index for a question.
type Chooser interface {
	Choose(label string, items []string) (int, error)
}

// Survey runs the reflection check-in and renders the rating card.
type Survey struct {
	// Answers pre-fills points by question id; missing answers are asked.
	Answers map[string]int
	Chooser Chooser
	Width   int

	JSON bool
	Out  io.Writer
}

func (n *Survey) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	answers := make(map[string]int, len(n.Answers))
	for k, v := range n.Answers {
		answers[k] = v
	}
	for _, q := range survey.Questions() {
		if _, ok := answers[q.ID]; ok || n.Chooser == nil {
			continue
		}
		labels := make([]string, len(q.Choices))
		for i, c := range q.Choices {
			labels[i] = c.Label
		}
		i, err := n.Chooser.Choose(q.Prompt, labels)
		if err != nil {
			return err
		}
		answers[q.ID] = q.Choices[i].Points
	}

	result, err := survey.Score(answers)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(out, result)
	}

	width := n.Width
	if width <= 0 {
		width = printers.DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	rendered, err := r.Render(result.Markdown())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
