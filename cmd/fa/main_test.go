package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/fa"
	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/spec"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := Execute(context.Background())
	return out.String(), err
}

// resetFlags restores the defaults of every flag so that the command tree can run again.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

const chainGrammar = `S = {0, 1, 2, 3}
S0 = {0}
T = {3}
A = {a, b, c}
F(0,a) = {1}
F(1,b) = {2}
F(2,c) = {3}
`

func TestNFA(t *testing.T) {
	out, err := execute(t, "", "nfa", "a")
	require.NoError(t, err)
	require.Equal(t, "S = {0, 1}\nS0 = {0}\nT = {1}\nA = {a}\nF(0,a) = {1}\n", out)

	out, err = execute(t, chainGrammar, "nfa", "-g", "-")
	require.NoError(t, err)
	require.Equal(t, chainGrammar, out)

	_, err = execute(t, "", "nfa", "(a")
	require.Error(t, err)

	_, err = execute(t, chainGrammar, "nfa", "-g", "-", "a")
	require.Error(t, err)

	_, err = execute(t, "", "nfa")
	require.Error(t, err)
}

func TestDFA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dfa.fa")
	_, err := execute(t, "", "dfa", "(a|b)*abb", "-o", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	a, err := spec.Load(f)
	require.NoError(t, err)
	require.Equal(t, 5, a.NumStates())
	require.True(t, automaton.Accepts(a, "babb"))
	require.False(t, automaton.Accepts(a, "abba"))

	out, err := execute(t, "", "dfa", "ab", "--dead-state")
	require.NoError(t, err)
	require.Contains(t, out, "S = {0, 1, 2, 3}\n")
	require.Contains(t, out, "// 2 = {}\n")
}

func TestAccept(t *testing.T) {
	out, err := execute(t, "", "accept", "a(b|c)*", "a", "abbcbc", "", "b")
	require.NoError(t, err)
	require.Equal(t, "\"a\": accepted\n\"abbcbc\": accepted\n\"\": rejected\n\"b\": rejected\n", out)

	out, err = execute(t, chainGrammar, "accept", "-g", "-", "abc", "ab", "--nfa")
	require.NoError(t, err)
	require.Equal(t, "\"abc\": accepted\n\"ab\": rejected\n", out)

	out, err = execute(t, "", "accept", "ab", "ax", "--trace", "--nfa")
	require.NoError(t, err)
	require.Equal(t, "\"ax\": rejected\n    0 ε {0}\n    1 a {1, 2}\n    2 x {}\n", out)

	_, err = execute(t, chainGrammar, "accept", "-g", "-")
	require.Error(t, err)
}

func TestShow(t *testing.T) {
	out, err := execute(t, "", "show", "ab")
	require.NoError(t, err)
	require.Contains(t, out, "DFA: 3 states, 2 symbols, 2 transitions")
	require.Contains(t, out, "STATE")
	require.Contains(t, out, "NFA STATES")

	out, err = execute(t, "", "show", "a*", "--nfa")
	require.NoError(t, err)
	require.Contains(t, out, "NFA:")
	require.Contains(t, out, "ε")
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	_, err := execute(t, "", "export", "a", "-f", "json")
	require.NoError(t, err)
	out, err := execute(t, "", "export", "a")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "S = {"), out)
}

func TestExport(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, data []byte)
	}{
		{
			format: "text",
			check: func(t *testing.T, data []byte) {
				_, err := spec.Load(bytes.NewReader(data))
				require.NoError(t, err)
			},
		},
		{
			format: "json",
			check: func(t *testing.T, data []byte) {
				a, err := automaton.UnmarshalJSON(data)
				require.NoError(t, err)
				require.True(t, a.Deterministic())
			},
		},
		{
			format: "cbor",
			check: func(t *testing.T, data []byte) {
				a, err := automaton.UnmarshalCBOR(data)
				require.NoError(t, err)
				require.True(t, a.Deterministic())
			},
		},
		{
			format: "dot",
			check: func(t *testing.T, data []byte) {
				require.True(t, strings.HasPrefix(string(data), "digraph G {"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "", "export", "a(b|c)*", "--format", tt.format)
			require.NoError(t, err)
			tt.check(t, []byte(out))
		})
	}

	_, err := execute(t, "", "export", "a", "--format", "xml")
	require.Error(t, err)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.txt")
	_, err := execute(t, "", "save", "a|b", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.True(t, strings.HasPrefix(text, "// Regular expression\n// a|b\n"))
	require.Contains(t, text, "// NFA\n")
	require.Contains(t, text, "// DFA\n")

	_, err = execute(t, "", "save", "a|b")
	require.Error(t, err)

	_, err = execute(t, "", "save", "a|b", "-o", filepath.Join(t.TempDir(), "missing", "session.txt"))
	require.Error(t, err)

	if _, err := os.Stat("/dev/full"); err == nil {
		_, err = execute(t, "", "save", "a|b", "-o", "/dev/full")
		require.Error(t, err)
	}
}

// failingWriter fails the first write and accepts the rest.
type failingWriter struct {
	failed bool
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if !w.failed {
		w.failed = true
		return 0, errors.New("write failed")
	}
	return len(p), nil
}

func TestWriteSession(t *testing.T) {
	nfa, err := fa.CompileRegex("a")
	require.NoError(t, err)
	dfa := fa.Determinize(nfa)

	var b bytes.Buffer
	require.NoError(t, writeSession(&b, "a", nfa, dfa))
	require.True(t, strings.HasPrefix(b.String(), "// Regular expression\n// a\n\n// NFA\nS = "))

	require.Error(t, writeSession(&failingWriter{}, "a", nfa, dfa))
}

func TestTest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chain.fa"), []byte(chainGrammar), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chain.fatest"), []byte("Chain\n---\ngrammar \"chain.fa\"\n---\naccept \"abc\"\nreject \"\"\n"), 0644))

	out, err := execute(t, "", "test", dir)
	require.NoError(t, err)
	require.Equal(t, "Passed "+filepath.Join(dir, "chain.fatest")+"\n", out)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.fatest"), []byte("Wrong\n---\npattern \"a\"\n---\naccept \"b\"\n"), 0644))
	out, err = execute(t, "", "test", dir)
	require.Error(t, err)
	require.Contains(t, out, "Failed "+filepath.Join(dir, "wrong.fatest"))
}

func TestEnv(t *testing.T) {
	out, err := execute(t, "", "env")
	require.NoError(t, err)
	for _, name := range []string{"FA_DEBUG", "FA_EPSILON", "FA_DEAD_STATE"} {
		require.Contains(t, out, name)
	}
}
