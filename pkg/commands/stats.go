package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/runner/stats"
	"tableflip.dev/mindease/pkg/timeutil"
	"tableflip.dev/mindease/pkg/tui/theme"
)

func addStats(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	output := &options.OutputOptions{}
	var plain bool

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"analysis"},
		Short:   "Chart how your moods are distributed",
		Long: `Chart how many entries carry each mood and show the average mood score.

Scores: 😊 5, 😐 3, 😴 2, 😢 1, 😡 0. Entries without a mood are counted as
unknown and left out of the average.`,
		Example: `
mindease stats
mindease stats --last 2w
mindease stats --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output.Out = outFor(cmd)
			window, label, err := timeutil.ParseWindow(wo.Last)
			if err != nil {
				return output.HandleError(err)
			}
			sess, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			view := sess.Analytics
			view.Window = window
			view.Now = time.Now

			pref, err := sess.Theme()
			if err != nil {
				return output.HandleError(err)
			}
			s := stats.Stats{
				View:  view,
				Label: label,
				Plain: plain,
				Theme: theme.New(theme.Resolve(string(pref))),
				JSON:  output.JSON,
				Out:   output.Writer(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddWindowArg(cmd, wo)
	cmd.Flags().BoolVar(&plain, "plain", false, "Draw the chart without color.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
