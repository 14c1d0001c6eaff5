package options

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/mindease/pkg/mood"
)

// MoodValue is a pflag.Value accepting a mood emoji or any of its aliases.
type MoodValue struct {
	Mood mood.Mood
}

var _ pflag.Value = (*MoodValue)(nil)

func (v *MoodValue) String() string {
	if v.Mood == "" {
		return string(mood.Any)
	}
	return string(v.Mood)
}

func (v *MoodValue) Set(s string) error {
	m, err := mood.Parse(s)
	if err != nil {
		return err
	}
	v.Mood = m
	return nil
}

func (v *MoodValue) Type() string {
	return "mood"
}

// Get returns the parsed mood, mood.Any when the flag was not given.
func (v *MoodValue) Get() mood.Mood {
	if v.Mood == "" {
		return mood.Any
	}
	return v.Mood
}

// MoodOptions
type MoodOptions struct {
	Mood MoodValue
}

func AddMoodArg(cmd *cobra.Command, o *MoodOptions, usage string) {
	cmd.Flags().VarP(&o.Mood, "mood", "m", usage)
	_ = cmd.RegisterFlagCompletionFunc("mood", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, n := range mood.Nouns() {
			if strings.HasPrefix(n, toComplete) {
				out = append(out, n)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// FilterOptions
type FilterOptions struct {
	Search string
	Limit  int
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only entries whose text or date contains this.")
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 0,
		"Show at most this many entries.")
}

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArg(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", "all",
		`Only count entries from this trailing window, for example "7d", "2w", "3mo".`)
}
