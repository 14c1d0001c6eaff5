package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/chat"
	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/meditation"
	chatrunner "tableflip.dev/mindease/pkg/runner/chat"
	"tableflip.dev/mindease/pkg/runner/meditate"
	surveyrunner "tableflip.dev/mindease/pkg/runner/survey"
	"tableflip.dev/mindease/pkg/survey"
)

func addChat(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk with " + chat.Name,
		Long: chat.Name + ` is a simple listening companion. Give a message to get one answer,
or leave it out to keep talking until you type "quit".`,
		Example: `
mindease chat "hi"
mindease chat
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := chatrunner.Chat{
				Companion: chat.New(),
				Message:   strings.Join(args, " "),
				In:        cmd.InOrStdin(),
				Out:       outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addSurvey(topLevel *cobra.Command) {
	output := &options.OutputOptions{}
	answers := map[string]int{}

	ids := make([]string, 0, len(survey.Questions()))
	for _, q := range survey.Questions() {
		ids = append(ids, q.ID)
	}

	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Take the weekly reflection check-in",
		Long: `Answer five short questions and get a rating with a suggestion.
Questions are ` + strings.Join(ids, ", ") + `. Answers given with --answer are not asked.`,
		Example: `
mindease survey
mindease survey --answer q1=2,q2=1,q3=0,q4=2,q5=2 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output.Out = outFor(cmd)
			s := surveyrunner.Survey{
				Answers: answers,
				JSON:    output.JSON,
				Out:     output.Writer(),
			}
			if len(answers) < len(ids) {
				if !interactiveStdin(cmd) {
					return output.HandleError(errors.New("not every question was answered, pass --answer for each or run in a terminal"))
				}
				s.Chooser = prompter(cmd)
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringToIntVar(&answers, "answer", nil, "Points per question, for example q1=2.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addMeditate(topLevel *cobra.Command) {
	var (
		minutes float64
		cycles  int
	)

	cmd := &cobra.Command{
		Use:   "meditate",
		Short: "Run a timed meditation",
		Example: `
mindease meditate
mindease meditate --minutes 10
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if minutes <= 0 {
				return errors.New("--minutes must be positive")
			}
			s := meditate.Meditate{
				Length: time.Duration(minutes * float64(time.Minute)),
				Out:    outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}
	cmd.Flags().Float64Var(&minutes, "minutes", meditation.DefaultSession.Minutes(), "Length of the session.")

	breathe := &cobra.Command{
		Use:   "breathe",
		Short: "Pace your breathing: inhale, hold, exhale",
		Example: `
mindease meditate breathe
mindease meditate breathe --cycles 5
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cycles < 0 {
				return errors.New("--cycles can not be negative")
			}
			s := meditate.Meditate{
				Breathe: true,
				Cycles:  cycles,
				Out:     outFor(cmd),
			}
			return s.Do(cmd.Context())
		},
	}
	breathe.Flags().IntVar(&cycles, "cycles", 0, "Stop after this many breaths; 0 runs until interrupted.")
	cmd.AddCommand(breathe)

	topLevel.AddCommand(cmd)
}
