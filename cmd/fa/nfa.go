package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/nihei9/fa/spec"
)

func init() {
	rootCmd.AddCommand(newNFACmd())
}

func newNFACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nfa <pattern>",
		Short: "Print the NFA of a pattern or a grammar as grammar text",
		Example: `  fa nfa 'a(b|c)*'
  fa nfa -g grammar.fa`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNFA,
	}
	addSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	return cmd
}

func runNFA(cmd *cobra.Command, args []string) error {
	nfa, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	return writeOutput(cmd, func(w io.Writer) error {
		return spec.Write(w, nfa)
	})
}
