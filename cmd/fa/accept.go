package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nihei9/fa"
	"github.com/nihei9/fa/automaton"
)

func init() {
	rootCmd.AddCommand(newAcceptCmd())
}

func newAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <pattern> <input>...",
		Short: "Tell whether an automaton accepts strings",
		Example: `  fa accept 'a(b|c)*' a abbc b
  fa accept -g grammar.fa abc --trace`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAccept,
	}
	addSourceFlags(cmd)
	addDeterminizeFlags(cmd)
	cmd.Flags().Bool("nfa", false, "simulate the NFA instead of the DFA")
	cmd.Flags().Bool("trace", false, "print the active states after each character")
	return cmd
}

func runAccept(cmd *cobra.Command, args []string) error {
	nfa, inputs, err := readNFA(cmd, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("at least one input is required")
	}
	useNFA, err := cmd.Flags().GetBool("nfa")
	if err != nil {
		return err
	}
	trace, err := cmd.Flags().GetBool("trace")
	if err != nil {
		return err
	}

	a := nfa
	if !useNFA {
		a, err = determinize(cmd, nfa)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, input := range inputs {
		result := "rejected"
		if fa.Accepts(a, input) {
			result = "accepted"
		}
		fmt.Fprintf(out, "%v: %v\n", strconv.Quote(input), result)
		if !trace {
			continue
		}
		for _, step := range automaton.Trace(a, input) {
			fmt.Fprintf(out, "    %v %v %v\n", step.Pos, step.Symbol, formatLabels(a, step.Active))
		}
	}
	return nil
}

func formatLabels(a *automaton.Automaton, set automaton.StateSet) string {
	labels := make([]string, set.Len())
	for i, s := range set.States() {
		labels[i] = a.Label(s)
	}
	return "{" + strings.Join(labels, ", ") + "}"
}
