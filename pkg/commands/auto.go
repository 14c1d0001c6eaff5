package commands

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// menuCommands are the subcommands worth offering in the picker: runnable
// without arguments and not plumbing.
func menuCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		switch c.Name() {
		case "help", "completion", "mcp", "version":
			continue
		}
		if c.Args != nil && c.Args(c, nil) != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// PromptNext shows a menu of commands and runs the chosen one, prompting
// for its input when it supports --interactive.
func PromptNext(cmd *cobra.Command, args []string) error {
	subcommands := menuCommands(cmd)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name }} {{ .Short | cyan }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "➜  {{ .Name }}",
		Details: `
--------- Details ----------
{{ .Long }}
`,
	}

	searcher := func(input string, index int) bool {
		subcommand := subcommands[index]
		name := strings.Replace(strings.ToLower(subcommand.Name()+subcommand.Short), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)

		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "What would you like to do",
		Items:     subcommands,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return err
	}
	next := subcommands[i]

	if !next.Runnable() && next.HasAvailableSubCommands() {
		return PromptNext(next, args)
	}
	if f := next.Flags().Lookup("interactive"); f != nil {
		if err := f.Value.Set("true"); err != nil {
			return err
		}
	}
	next.SetContext(cmd.Context())
	if next.RunE != nil {
		return next.RunE(next, nil)
	}
	next.Run(next, nil)
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
