package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mindease/pkg/entry"
)

// DefaultWidth is the wrap column for entry text.
const DefaultWidth = 80

type PrettyPrint struct {
	ShowID bool
	Width  int
	Out    io.Writer
}

var spacing = strings.Repeat(" ", len("1717171717171  "))

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return DefaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints the journal list, newest first, the way the journal tab
// shows it: the text followed by a faint "mood • created" line.
func (pp *PrettyPrint) Entries(entries ...entry.Entry) {
	w := pp.out()
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(w, " No entries yet\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	meta := color.New(color.Faint)

	textWidth := pp.width()
	if pp.ShowID {
		textWidth -= len(spacing)
	}
	for _, e := range entries {
		lines := strings.Split(wordwrap.String(e.Text, textWidth), "\n")
		for i, line := range lines {
			if pp.ShowID {
				if i == 0 {
					id := strconv.FormatInt(e.ID, 10)
					_, _ = y.Fprint(w, id)
					_, _ = fmt.Fprint(w, strings.Repeat(" ", max(1, len(spacing)-len(id))))
				} else {
					_, _ = fmt.Fprint(w, spacing)
				}
			}
			_, _ = fmt.Fprintln(w, line)
		}
		if pp.ShowID {
			_, _ = fmt.Fprint(w, spacing)
		}
		_, _ = meta.Fprintln(w, e.Meta())
		_, _ = fmt.Fprintln(w, "")
	}
}

// Detail prints a single entry with its fields laid out as a table.
func (pp *PrettyPrint) Detail(e entry.Entry) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("id"), e.ID)
	tbl.AddRow(bold.Sprint("mood"), e.Mood.String())
	tbl.AddRow(bold.Sprint("created"), e.Created)
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
	_, _ = fmt.Fprintln(pp.out(), indent.String(wordwrap.String(e.Text, pp.width()-2), 2))
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	if w == nil {
		w = color.Output
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
