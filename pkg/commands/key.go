package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the moods, their scores and aliases",
		Example: `
mindease key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Out: outFor(cmd)}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
