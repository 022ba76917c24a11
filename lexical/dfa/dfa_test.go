package dfa

import (
	"strings"
	"testing"

	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/lexical/nfa"
	"github.com/nihei9/fa/lexical/parser"
)

func compileNFA(t *testing.T, pattern string) *automaton.Automaton {
	t.Helper()

	root, err := parser.NewParser(strings.NewReader(pattern)).Parse()
	if err != nil {
		t.Fatal(err)
	}
	a, err := nfa.Compile(root)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// enumerate returns every string up to maxLen over the symbols.
func enumerate(syms []automaton.Symbol, maxLen int) []string {
	strs := []string{""}
	last := []string{""}
	for l := 1; l <= maxLen; l++ {
		var next []string
		for _, prefix := range last {
			for _, sym := range syms {
				next = append(next, prefix+string(rune(sym)))
			}
		}
		strs = append(strs, next...)
		last = next
	}
	return strs
}

func testLanguageEquivalence(t *testing.T, n, d *automaton.Automaton, maxLen int) {
	t.Helper()

	syms := append(n.Alphabet(), 'z')
	for _, s := range enumerate(syms, maxLen) {
		if automaton.Accepts(n, s) != automaton.Accepts(d, s) {
			t.Fatalf("the DFA disagrees with the NFA on %q; NFA: %v", s, automaton.Accepts(n, s))
		}
	}
}

func TestDeterminize_ClassicExample(t *testing.T) {
	n := compileNFA(t, "(a|b)*abb")
	d := Determinize(n)

	if !d.Deterministic() {
		t.Fatal("the automaton must be a DFA")
	}
	if d.NumStates() != 5 {
		t.Fatalf("unexpected state count; want: 5, got: %v", d.NumStates())
	}
	if d.Initial() != 0 {
		t.Fatalf("the initial state must be discovered first; got: %v", d.Initial())
	}
	if !d.Finals().Equal(automaton.NewStateSet(4)) {
		t.Fatalf("unexpected final states; want: {4}, got: %v", d.Finals())
	}

	expected := map[automaton.State][2]automaton.State{
		0: {1, 2},
		1: {1, 3},
		2: {1, 2},
		3: {1, 4},
		4: {1, 2},
	}
	for from, to := range expected {
		for i, sym := range []automaton.Symbol{'a', 'b'} {
			next, ok := d.Next(from, sym)
			if !ok || next != to[i] {
				t.Fatalf("unexpected transition from %v on %v; want: %v, got: %v (%v)", from, sym, to[i], next, ok)
			}
		}
	}

	for _, s := range []string{"abb", "aabb", "babb", "ababb"} {
		if !automaton.Accepts(d, s) {
			t.Errorf("%q must be accepted", s)
		}
	}
	for _, s := range []string{"", "ab", "abab", "abba"} {
		if automaton.Accepts(d, s) {
			t.Errorf("%q must be rejected", s)
		}
	}
}

func TestDeterminize_Origins(t *testing.T) {
	n := compileNFA(t, "a|b")
	d := Determinize(n)

	seen := map[string]automaton.State{}
	for _, s := range d.States() {
		origin, ok := d.Origin(s)
		if !ok {
			t.Fatalf("state %v has no origin", s)
		}
		if prev, ok := seen[origin.Key()]; ok {
			t.Fatalf("states %v and %v stand for the same NFA states %v", prev, s, origin)
		}
		seen[origin.Key()] = s
		if d.IsFinal(s) != origin.Intersects(n.Finals()) {
			t.Fatalf("state %v must be final iff its origin %v contains an NFA final state", s, origin)
		}
	}
	origin, _ := d.Origin(d.Initial())
	if !origin.Equal(n.EpsilonClosure(automaton.NewStateSet(n.Initial()))) {
		t.Fatalf("the initial state must stand for the closure of the NFA initial state; got: %v", origin)
	}
}

func TestDeterminize_LanguageEquivalence(t *testing.T) {
	patterns := []string{
		"a",
		"a(b|c)*",
		"(a|b)*abb",
		"",
		"a|ε",
		"(a*|b*)*",
		"((a|b)(a|b))*",
		"a*b*a*",
		"(ab|ba)*(a|ε)",
		// two alternatives both containing cycles
		"(a(ba)*|b(ab)*)*c",
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n := compileNFA(t, pattern)
			d := Determinize(n)
			if d.NumStates() > 1<<uint(n.NumStates()) {
				t.Fatalf("too many states: %v", d.NumStates())
			}
			testLanguageEquivalence(t, n, d, 6)

			withDead := Determinize(n, WithDeadState())
			testLanguageEquivalence(t, n, withDead, 6)

			again := Determinize(d)
			testLanguageEquivalence(t, n, again, 6)
			if again.NumStates() != d.NumStates() {
				t.Fatalf("determinizing a DFA must not add states; want: %v, got: %v", d.NumStates(), again.NumStates())
			}
		})
	}
}

func TestDeterminize_DeadState(t *testing.T) {
	n := compileNFA(t, "ab")

	d := Determinize(n)
	if d.NumStates() != 3 {
		t.Fatalf("unexpected state count; want: 3, got: %v", d.NumStates())
	}
	if d.NumTransitions() != 2 {
		t.Fatalf("undefined transitions must stay undefined; got: %v transitions", d.NumTransitions())
	}

	d = Determinize(n, WithDeadState())
	if d.NumStates() != 4 {
		t.Fatalf("unexpected state count; want: 4, got: %v", d.NumStates())
	}
	if d.NumTransitions() != d.NumStates()*len(d.Alphabet()) {
		t.Fatalf("a DFA with a dead state must be total; got: %v transitions", d.NumTransitions())
	}
	dead, ok := d.Next(d.Initial(), 'b')
	if !ok {
		t.Fatal("the transition must enter the dead state")
	}
	if d.IsFinal(dead) {
		t.Fatal("the dead state must not be final")
	}
	origin, _ := d.Origin(dead)
	if !origin.Empty() {
		t.Fatalf("the dead state must stand for no NFA state; got: %v", origin)
	}
	for _, sym := range d.Alphabet() {
		if next, _ := d.Next(dead, sym); next != dead {
			t.Fatalf("the dead state must loop on %v", sym)
		}
	}
}

func TestDeterminize_EmptyLanguage(t *testing.T) {
	b := automaton.NewNFABuilder()
	s0 := b.AddState("")
	s1 := b.AddState("")
	b.AddSymbol('a')
	b.SetInitial(s0)
	b.AddTransition(s0, 'a', s1)
	n, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	d := Determinize(n)
	if !d.Finals().Empty() {
		t.Fatalf("an automaton without final states recognizes nothing; got finals: %v", d.Finals())
	}
	testLanguageEquivalence(t, n, d, 3)
}
