package tester

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/lexical"
	"github.com/nihei9/fa/lexical/dfa"
	"github.com/nihei9/fa/spec"
	tspec "github.com/nihei9/fa/spec/test"
)

// Failure is a string an automaton gave a wrong answer for.
type Failure struct {
	Line   int
	Input  string
	Accept bool

	// Form names the form of the automaton that gave the wrong answer: nfa, dfa, or table.
	Form string
}

func (f *Failure) String() string {
	want := "rejected"
	if f.Accept {
		want = "accepted"
	}
	return fmt.Sprintf("%v: %v must be %v by the %v", f.Line, strconv.Quote(f.Input), want, f.Form)
}

type TestResult struct {
	TestCasePath string
	Error        error
	Failures     []*Failure
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Failures) == 0 {
			return msg
		}
		var failLines []string
		for _, f := range r.Failures {
			failLines = append(failLines, f.String())
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(failLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		// Grammar files live next to test cases; only files with the test case extension are test cases.
		if !e.IsDir() && filepath.Ext(e.Name()) != TestCaseExt {
			continue
		}
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

// TestCaseExt is the extension ListTestCases looks for in a directory.
const TestCaseExt = ".fatest"

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	Cases []*TestCaseWithMetadata

	// Concurrency limits the number of test cases running at the same time. A value less than one means
	// no limit.
	Concurrency int
}

// Run runs every test case and returns the results in the order of the test cases. Each test case compiles
// its own automaton, so test cases run concurrently.
func (t *Tester) Run(ctx context.Context) ([]*TestResult, error) {
	rs := make([]*TestResult, len(t.Cases))
	g, ctx := errgroup.WithContext(ctx)
	if t.Concurrency > 0 {
		g.SetLimit(t.Concurrency)
	}
	for i, c := range t.Cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rs[i] = runTest(c)
			slog.Debug("ran a test case", "path", c.FilePath, "passed", rs[i].Error == nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rs, nil
}

func runTest(c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	nfa, err := compile(c)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	var opts []dfa.DeterminizeOption
	if c.TestCase.Source.DeadState {
		opts = append(opts, dfa.WithDeadState())
	}
	d := dfa.Determinize(nfa, opts...)
	tab, err := dfa.GenTable(d)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	forms := []struct {
		name    string
		accepts func(input string) bool
	}{
		{
			name: "nfa",
			accepts: func(input string) bool {
				return automaton.Accepts(nfa, input)
			},
		},
		{
			name: "dfa",
			accepts: func(input string) bool {
				return automaton.Accepts(d, input)
			},
		},
		{
			name:    "table",
			accepts: tab.Accepts,
		},
	}
	var failures []*Failure
	for _, e := range c.TestCase.Expectations {
		for _, input := range e.Inputs {
			for _, form := range forms {
				if form.accepts(input) == e.Accept() {
					continue
				}
				failures = append(failures, &Failure{
					Line:   e.Pos.Line,
					Input:  input,
					Accept: e.Accept(),
					Form:   form.name,
				})
			}
		}
	}
	if len(failures) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("%v unexpected results", len(failures)),
			Failures:     failures,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func compile(c *TestCaseWithMetadata) (*automaton.Automaton, error) {
	src := c.TestCase.Source
	if src.Pattern != nil {
		return lexical.Compile(*src.Pattern)
	}

	path := *src.Grammar
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(c.FilePath), path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spec.Load(f, spec.FilePath(path))
}
