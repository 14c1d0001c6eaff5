package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/runner/draft"
)

func addDraft(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "draft [show|set|clear] [text]",
		Short: "Show or change the unsaved draft",
		Long: `The draft is the text left in the journal box of the terminal UI. It is
saved automatically while you type and restored the next time you open it.`,
		Example: `
mindease draft
mindease draft set "started writing about today"
mindease draft clear
`,
		ValidArgs: []string{string(draft.Show), string(draft.Set), string(draft.Clear)},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := draft.Show
			if len(args) > 0 {
				action = draft.Action(strings.ToLower(args[0]))
				args = args[1:]
			}
			if action != draft.Set && len(args) > 0 {
				return fmt.Errorf("draft %s takes no text", action)
			}
			sess, _, err := loadSession()
			if err != nil {
				return err
			}
			s := draft.Draft{
				Journal: sess.Journal,
				Action:  action,
				Text:    strings.Join(args, " "),
				Out:     outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "theme [dark|light|auto]",
		Short: "Show or set dark mode",
		Long: `Show or set dark mode. "auto" follows the terminal background, which is
also what happens until a preference is saved.`,
		Example: `
mindease theme
mindease theme dark
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(app.ThemeDark), string(app.ThemeLight), string(app.ThemeAuto)},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession()
			if err != nil {
				return err
			}
			out := outFor(cmd)
			if len(args) == 0 {
				t, err := sess.Theme()
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, t)
				return nil
			}
			t, err := app.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := sess.SetTheme(t); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Theme set to %s.\n", t)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
