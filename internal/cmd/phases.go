package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "List the debate phases of the active content",
	RunE:  runPhases,
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics with scripted plans",
	Long: `List the topics with scripted plans. Any other topic replays the
first plan under the new title.`,
	RunE: runTopics,
}

func init() {
	rootCmd.AddCommand(phasesCmd)
	rootCmd.AddCommand(topicsCmd)
}

func runPhases(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	n := 0
	for _, p := range rt.catalog.Phases() {
		if p.Internal {
			fmt.Fprintf(out, "     %s %s (pause)\n", p.Icon, p.Label)
			continue
		}
		n++
		fmt.Fprintf(out, "%3d. %s %-22s %s\n", n, p.Icon, p.Label, p.ID)
	}

	if evals := rt.catalog.Evaluations(); len(evals) > 0 {
		fmt.Fprintln(out, "\nEvaluation pauses:")
		for _, e := range evals {
			fmt.Fprintf(out, "  %s -> %s -> %s\n", e.From, e.Via, e.To)
		}
	}
	return nil
}

func runTopics(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	for _, t := range rt.library().Topics() {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}
