package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/fa"
	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/envconfig"
	"github.com/nihei9/fa/spec"
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("grammar", "g", "", "grammar file path (- means stdin) used instead of a pattern")
}

func addDeterminizeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dead-state", envconfig.DeadState, "add an explicit dead state to the DFA")
}

// readNFA compiles the pattern in the first argument or, with --grammar, loads the grammar file. It returns
// the arguments left over.
func readNFA(cmd *cobra.Command, args []string) (*automaton.Automaton, []string, error) {
	grmPath, err := cmd.Flags().GetString("grammar")
	if err != nil {
		return nil, nil, err
	}
	if grmPath != "" {
		nfa, err := readGrammar(cmd, grmPath)
		if err != nil {
			return nil, nil, err
		}
		return nfa, args, nil
	}

	if len(args) == 0 {
		return nil, nil, errors.New("a pattern or --grammar is required")
	}
	nfa, err := fa.CompileRegex(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("Cannot compile the pattern %q: %w", args[0], err)
	}
	return nfa, args[1:], nil
}

// readSource is readNFA for commands taking nothing but the automaton.
func readSource(cmd *cobra.Command, args []string) (*automaton.Automaton, error) {
	nfa, rest, err := readNFA(cmd, args)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, errors.New("a pattern and --grammar cannot be used together")
	}
	return nfa, nil
}

func readGrammar(cmd *cobra.Command, path string) (*automaton.Automaton, error) {
	var src io.Reader
	opts := []spec.LoadOption{
		spec.SourceName("stdin"),
	}
	if path == "-" {
		src = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
		}
		defer f.Close()
		src = f
		opts = []spec.LoadOption{
			spec.FilePath(path),
		}
	}
	return fa.CompileGrammar(src, opts...)
}

func determinize(cmd *cobra.Command, nfa *automaton.Automaton) (*automaton.Automaton, error) {
	dead, err := cmd.Flags().GetBool("dead-state")
	if err != nil {
		return nil, err
	}
	return fa.Determinize(nfa, fa.WithDeadState(dead)), nil
}

// writeOutput writes to the file --output names or to stdout. Closing the file may report an error the
// writes did not.
func writeOutput(cmd *cobra.Command, write func(w io.Writer) error) (retErr error) {
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("Cannot open the output file %s: %w", path, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && retErr == nil {
			retErr = fmt.Errorf("Cannot close the output file %s: %w", path, err)
		}
	}()
	return write(f)
}
