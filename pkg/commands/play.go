package commands

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/games/memory"
	"tableflip.dev/mindease/pkg/runner/play"
)

func addPlay(topLevel *cobra.Command) {
	var seed int64

	cmd := &cobra.Command{
		Use:   "play [game]",
		Short: "Play a calming game",
		Long: `Play the flower memory-match game: turn over two cards per move and find
all eight pairs. The only game is memory, which is also the default.`,
		Example: `
mindease play
mindease play memory --seed 42
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"memory"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] != "memory" {
				return fmt.Errorf("unknown game %q, try memory", args[0])
			}
			var r *rand.Rand
			if seed != 0 {
				r = rand.New(rand.NewSource(seed))
			}
			s := play.Memory{
				Game: memory.New(r),
				In:   cmd.InOrStdin(),
				Out:  outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Shuffle seed, 0 shuffles from the clock.")
	topLevel.AddCommand(cmd)
}
