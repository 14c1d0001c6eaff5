package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the journal is stored.",
		Example: `
mindease info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, cfg, err := loadSession()
			if err != nil {
				return err
			}
			s := info.Info{
				Config:      cfg,
				Persistence: sess.Persistence,
				Out:         outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
