// Package snake holds the interactive prompts used by the command line.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/mindease/pkg/mood"
)

// Prompter asks questions on a terminal. It satisfies journal.Confirmer.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// Yes answers every confirmation without asking.
	Yes bool
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(label string) (bool, error) {
	if p.Yes {
		return true, nil
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     readCloser(p.In),
		Stdout:    writeCloser(p.Out),
	}
	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		return false, err
	}
	ok, perr := ParseBool(strings.TrimSpace(result))
	if perr != nil {
		return false, nil
	}
	return ok, nil
}

// Text asks for a line of journal text.
func (p *Prompter) Text(label string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("please write something first")
			}
			return nil
		},
		Stdin:  readCloser(p.In),
		Stdout: writeCloser(p.Out),
	}
	return prompt.Run()
}

// Mood lets the user pick a mood from the vocabulary.
func (p *Prompter) Mood(label string) (mood.Mood, error) {
	moods := mood.DefaultMoods()

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Mood }} {{ .Noun | bold }} {{ .Meaning | green }}",
		Inactive: "   {{ .Mood }} {{ .Noun }} {{ .Meaning | cyan }}",
		Selected: "{{ .Mood }} {{ .Noun | bold }}",
	}

	searcher := func(input string, index int) bool {
		g := moods[index]
		input = strings.ToLower(strings.TrimSpace(input))
		return strings.Contains(g.Noun, input) || strings.Contains(strings.ToLower(g.Meaning), input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     moods,
		Templates: templates,
		Size:      len(moods),
		Searcher:  searcher,
		Stdin:     readCloser(p.In),
		Stdout:    writeCloser(p.Out),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return mood.Any, fmt.Errorf("mood prompt: %w", err)
	}
	return moods[i].Mood, nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func readCloser(r io.Reader) io.ReadCloser {
	if r == nil {
		return nil
	}
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}

func writeCloser(w io.Writer) io.WriteCloser {
	if w == nil {
		return nil
	}
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}
	return nopWriteCloser{w}
}

// Choose asks the user to pick one of items and returns its index.
func (p *Prompter) Choose(label string, items []string) (int, error) {
	prompt := promptui.Select{
		HideHelp: true,
		Label:    label,
		Items:    items,
		Size:     len(items),
		Stdin:    readCloser(p.In),
		Stdout:   writeCloser(p.Out),
	}
	i, _, err := prompt.Run()
	if err != nil {
		return -1, err
	}
	return i, nil
}
