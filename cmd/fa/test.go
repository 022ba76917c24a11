package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nihei9/fa/tester"
)

func init() {
	rootCmd.AddCommand(newTestCmd())
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "test <test file path>|<test directory path>",
		Short:   "Run acceptance test cases",
		Example: `  fa test testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	return cmd
}

func runTest(cmd *cobra.Command, args []string) error {
	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[0])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Cases:       cs,
		Concurrency: runtime.NumCPU(),
	}
	rs, err := t.Run(cmd.Context())
	if err != nil {
		return err
	}
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(cmd.OutOrStdout(), r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
