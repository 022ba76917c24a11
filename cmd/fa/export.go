package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/spec"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCBOR = "cbor"
	formatDOT  = "dot"
)

func init() {
	rootCmd.AddCommand(newExportCmd())
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <pattern>",
		Short: "Write an automaton in a given format",
		Example: `  fa export 'a(b|c)*' --format dot -o dfa.dot
  fa export -g grammar.fa --nfa --format cbor -o nfa.cbor`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}
	addSourceFlags(cmd)
	addDeterminizeFlags(cmd)
	cmd.Flags().Bool("nfa", false, "export the NFA instead of the DFA")
	cmd.Flags().StringP("format", "f", formatText, "output format: text, json, cbor, or dot")
	cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	var write func(w io.Writer, a *automaton.Automaton) error
	switch format {
	case formatText:
		write = spec.Write
	case formatJSON:
		write = writeWith(automaton.MarshalJSON)
	case formatCBOR:
		write = writeWith(automaton.MarshalCBOR)
	case formatDOT:
		write = automaton.WriteDOT
	default:
		return fmt.Errorf("unknown format: %v", format)
	}

	nfa, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	useNFA, err := cmd.Flags().GetBool("nfa")
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

	return writeOutput(cmd, func(w io.Writer) error {
		return write(w, a)
	})
}

func writeWith(marshal func(*automaton.Automaton) ([]byte, error)) func(io.Writer, *automaton.Automaton) error {
	return func(w io.Writer, a *automaton.Automaton) error {
		b, err := marshal(a)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
}
