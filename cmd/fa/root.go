package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nihei9/fa/envconfig"
	"github.com/nihei9/fa/logutil"
)

var rootCmd = &cobra.Command{
	Use:   "fa",
	Short: "Compile regular expressions into finite automata",
	Long: `fa provides the following features:
- Compiles a regular expression or a grammar into an NFA and determinizes it into a DFA.
- Tells whether an automaton accepts strings.
- Writes automata as grammar text, JSON, CBOR, or Graphviz DOT.
- Runs acceptance test cases.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUpLogger,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "show debug logs")
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setUpLogger installs the default logger. --debug lowers the level FA_DEBUG sets to debug at most.
func setUpLogger(cmd *cobra.Command, args []string) error {
	level := envconfig.LogLevel()
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return err
	}
	if debug && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), level))
	return nil
}
