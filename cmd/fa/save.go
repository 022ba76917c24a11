package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nihei9/fa"
	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/spec"
)

func init() {
	rootCmd.AddCommand(newSaveCmd())
}

func newSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "save <pattern>",
		Short:   "Write a pattern with its NFA and DFA to one file",
		Example: `  fa save 'a(b|c)*' -o session.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runSave,
	}
	addDeterminizeFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file path")
	return cmd
}

func runSave(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("--output is required")
	}

	nfa, err := fa.CompileRegex(args[0])
	if err != nil {
		return fmt.Errorf("Cannot compile the pattern %q: %w", args[0], err)
	}
	dfa, err := determinize(cmd, nfa)
	if err != nil {
		return err
	}

	return writeOutput(cmd, func(w io.Writer) error {
		return writeSession(w, args[0], nfa, dfa)
	})
}

// writeSession writes the pattern followed by the grammar text of its NFA and DFA.
func writeSession(w io.Writer, pattern string, nfa, dfa *automaton.Automaton) error {
	_, err := fmt.Fprintf(w, "// Regular expression\n// %v\n\n// NFA\n", pattern)
	if err != nil {
		return err
	}
	err = spec.Write(w, nfa)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n// DFA\n")
	if err != nil {
		return err
	}
	return spec.Write(w, dfa)
}
