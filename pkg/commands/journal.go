package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/journal"
	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/runner/add"
	"tableflip.dev/mindease/pkg/runner/clear"
	"tableflip.dev/mindease/pkg/runner/del"
	"tableflip.dev/mindease/pkg/runner/edit"
	"tableflip.dev/mindease/pkg/runner/get"
	"tableflip.dev/mindease/pkg/runner/show"
	"tableflip.dev/mindease/pkg/snake"
)

// interactiveStdin reports whether prompts can be shown.
func interactiveStdin(cmd *cobra.Command) bool {
	if cmd.InOrStdin() != os.Stdin {
		return true
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func prompter(cmd *cobra.Command) *snake.Prompter {
	return &snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}

func moodHelp() string {
	b := strings.Builder{}
	b.WriteString("Moods and aliases:\n")
	for _, g := range mood.DefaultMoods() {
		b.WriteString(fmt.Sprintf("%s %s: %s\n", g.Mood, g.Noun, strings.Join(g.Aliases, ", ")))
	}
	return b.String()
}

func addAdd(topLevel *cobra.Command) {
	mo := &options.MoodOptions{}
	i := &options.InteractiveOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Write a journal entry",
		Long:  "Write a journal entry, optionally tagged with a mood.\n\n" + moodHelp(),
		Example: `
mindease add "slept well, long walk after lunch" --mood happy
mindease add -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.Out = outFor(cmd)
			text := strings.Join(args, " ")
			m := mo.Mood.Get()
			if i.Interactive {
				p := prompter(cmd)
				var err error
				if strings.TrimSpace(text) == "" {
					if text, err = p.Text("How are you feeling today"); err != nil {
						return err
					}
				}
				if !cmd.Flags().Changed("mood") {
					if m, err = p.Mood("Mood"); err != nil {
						return err
					}
				}
			}
			sess, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := add.Add{
				Journal: sess.Journal,
				Message: text,
				Mood:    m,
				JSON:    output.JSON,
				Out:     output.Writer(),
			}
			err = s.Do(cmd.Context())
			if errors.Is(err, journal.ErrEmptyText) {
				err = errors.New("please write something first")
			}
			return output.HandleError(err)
		},
	}

	options.AddMoodArg(cmd, mo, "Mood of the entry.")
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addGet(topLevel *cobra.Command) {
	mo := &options.MoodOptions{}
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "get [mood]",
		Aliases: []string{"list", "ls"},
		Short:   "List journal entries, newest first",
		Long:    "List all or a filtered set of journal entries.\n\n" + moodHelp(),
		Example: `
mindease get
mindease get happy --search walk
mindease get --search 3/1/2024 --limit 5 --show-id
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: mood.Nouns(),
		RunE: func(cmd *cobra.Command, args []string) error {
			output.Out = outFor(cmd)
			filter := mo.Mood.Get()
			if len(args) == 1 {
				if cmd.Flags().Changed("mood") {
					return errors.New("mood given twice, use the argument or --mood")
				}
				var err error
				if filter, err = mood.Parse(args[0]); err != nil {
					return err
				}
			}
			sess, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := get.Get{
				Journal: sess.Journal,
				Search:  fo.Search,
				Filter:  filter,
				ShowID:  io.ShowID,
				Limit:   fo.Limit,
				JSON:    output.JSON,
				Out:     output.Writer(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddMoodArg(cmd, mo, "Only entries with this mood.")
	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full",
		Example: `
mindease show 1709283600000
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output.Out = outFor(cmd)
			id, err := options.ParseID(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			sess, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := show.Show{
				Journal: sess.Journal,
				ID:      id,
				JSON:    output.JSON,
				Out:     output.Writer(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	mo := &options.MoodOptions{}
	i := &options.InteractiveOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id> [text]",
		Short: "Change the text or mood of an entry",
		Long: `Change the text or mood of an entry. The entry keeps its id, its date and
its place in the list. Text or mood left out stays as it was.`,
		Example: `
mindease edit 1709283600000 "actually it was a good day"
mindease edit 1709283600000 --mood tired
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output.Out = outFor(cmd)
			id, err := options.ParseID(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			text := strings.Join(args[1:], " ")
			m := mo.Mood.Get()
			if !cmd.Flags().Changed("mood") {
				m = ""
			}
			sess, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			if i.Interactive {
				current, err := sess.Journal.BeginEdit(id)
				if err != nil {
					return output.HandleError(err)
				}
				p := prompter(cmd)
				if text == "" {
					_, _ = fmt.Fprintf(output.Writer(), "Current text: %s\n", current.Text)
					if text, err = p.Text("New text"); err != nil {
						return err
					}
				}
				if m == "" {
					if m, err = p.Mood("Mood"); err != nil {
						return err
					}
				}
			}
			s := edit.Edit{
				Journal: sess.Journal,
				ID:      id,
				Message: text,
				Mood:    m,
				JSON:    output.JSON,
				Out:     output.Writer(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddMoodArg(cmd, mo, "New mood for the entry.")
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete entries by id",
		Example: `
mindease delete 1709283600000
mindease get --show-id
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output.Out = outFor(cmd)
			ids, err := options.ParseIDs(args)
			if err != nil {
				return output.HandleError(err)
			}
			sess, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := del.Delete{
				Journal: sess.Journal,
				IDs:     ids,
				Out:     output.Writer(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every journal entry",
		Example: `
mindease clear
mindease clear --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !co.Yes && !interactiveStdin(cmd) {
				return errors.New("refusing to delete every entry without a terminal to confirm on, pass --yes")
			}
			sess, _, err := loadSession()
			if err != nil {
				return err
			}
			p := prompter(cmd)
			p.Yes = co.Yes
			s := clear.Clear{
				Journal:   sess.Journal,
				Confirmer: p,
				Out:       outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddYesArg(cmd, co)
	topLevel.AddCommand(cmd)
}
