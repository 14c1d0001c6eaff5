package commands

import (
	"io"
	"os"

	"github.com/fatih/color"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/logger"
	"tableflip.dev/mindease/pkg/store"
)

// RootOptions are the flags shared by every command.
type RootOptions struct {
	// Memory keeps the journal in memory for this run only.
	Memory bool
	Debug  bool
}

var (
	ro = &RootOptions{}
	// persistenceFor opens the journal storage for cfg.
	persistenceFor = func(cfg store.Config) (store.Persistence, error) {
		if ro.Memory {
			return store.NewMemory(), nil
		}
		return store.Load(cfg)
	}
)

func New() *cobra.Command {
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "mindease",
		Short: base.Wrap80("A calm journal for how you feel, with mood charts, meditation and a listening companion."),
		RunE: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return PromptNext(cmd, args)
			}
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&ro.Memory, "memory", false,
		"Keep the journal in memory; nothing is written to disk.")
	cmd.PersistentFlags().BoolVar(&ro.Debug, "debug", false,
		"Log debug output to stderr.")
	options.InteractiveArgs(cmd, i)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addClear(topLevel)
	addStats(topLevel)
	addDraft(topLevel)
	addTheme(topLevel)
	addChat(topLevel)
	addSurvey(topLevel)
	addMeditate(topLevel)
	addPlay(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadSession reads the configuration, starts the log file and opens the
// journal.
func loadSession() (*app.Session, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(logger.Config{Debug: ro.Debug || cfg.Debug(), Dir: cfg.LogDir()}); err != nil {
		return nil, nil, err
	}
	p, err := persistenceFor(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("journal opened", "path", cfg.BasePath(), "memory", ro.Memory)
	return app.NewSession(p, app.Options{AutosaveDelay: cfg.AutosaveDelay()}), cfg, nil
}

// outFor is the command's output, keeping color.Output for the real stdout
// so colors work on every platform.
func outFor(cmd *cobra.Command) io.Writer {
	if w := cmd.OutOrStdout(); w != os.Stdout {
		return w
	}
	return color.Output
}
