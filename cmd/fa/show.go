package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nihei9/fa/automaton"
)

func init() {
	rootCmd.AddCommand(newShowCmd())
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <pattern>",
		Short: "Print the transition table of an automaton",
		Example: `  fa show '(a|b)*abb'
  fa show -g grammar.fa --nfa`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
	addSourceFlags(cmd)
	addDeterminizeFlags(cmd)
	cmd.Flags().Bool("nfa", false, "print the NFA instead of the DFA")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, a)
	writeTable(cmd, a)
	return nil
}

// writeTable prints one row per state. The first column marks the initial state with -> and final states
// with *.
func writeTable(cmd *cobra.Command, a *automaton.Automaton) {
	syms := a.Alphabet()
	if a.HasEpsilonTransitions() {
		syms = append([]automaton.Symbol{automaton.Epsilon}, syms...)
	}

	header := []string{"", "STATE"}
	for _, sym := range syms {
		header = append(header, sym.String())
	}
	if a.HasOrigins() {
		header = append(header, "NFA STATES")
	}

	var data [][]string
	for _, s := range a.States() {
		mark := ""
		if s == a.Initial() {
			mark += "->"
		}
		if a.IsFinal(s) {
			mark += "*"
		}
		row := []string{mark, a.Label(s)}
		for _, sym := range syms {
			to := a.Targets(s, sym)
			switch {
			case to.Empty():
				row = append(row, "")
			case a.Deterministic():
				row = append(row, a.Label(to.States()[0]))
			default:
				row = append(row, formatLabels(a, to))
			}
		}
		if a.HasOrigins() {
			row = append(row, a.OriginString(s))
		}
		data = append(data, row)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("\t")
	table.AppendBulk(data)
	table.Render()
}
