package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/nihei9/fa/spec"
)

func init() {
	rootCmd.AddCommand(newDFACmd())
}

func newDFACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dfa <pattern>",
		Short: "Determinize the NFA of a pattern or a grammar and print the DFA as grammar text",
		Example: `  fa dfa '(a|b)*abb' -o dfa.fa
  fa dfa -g grammar.fa --dead-state`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDFA,
	}
	addSourceFlags(cmd)
	addDeterminizeFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	return cmd
}

func runDFA(cmd *cobra.Command, args []string) error {
	nfa, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	dfa, err := determinize(cmd, nfa)
	if err != nil {
		return err
	}
	return writeOutput(cmd, func(w io.Writer) error {
		return spec.Write(w, dfa)
	})
}
