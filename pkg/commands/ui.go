package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/mindease/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the full-screen terminal interface",
		Example: `
mindease ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := loadSession()
			if err != nil {
				return err
			}
			return teaui.Run(cmd.Context(), sess)
		},
	}

	topLevel.AddCommand(cmd)
}
