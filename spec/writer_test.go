package spec

import (
	"strings"
	"testing"

	"github.com/nihei9/fa/automaton"
	"github.com/nihei9/fa/lexical"
	"github.com/nihei9/fa/lexical/dfa"
)

func TestWrite(t *testing.T) {
	b := automaton.NewNFABuilder()
	s0 := b.AddState("start")
	s1 := b.AddState("")
	b.AddSymbol('a')
	b.AddSymbol(',')
	b.AddSymbol('ε')
	b.SetInitial(s0)
	b.AddFinal(s1)
	b.AddTransition(s0, 'a', s1)
	b.AddTransition(s0, automaton.Epsilon, s1)
	b.AddTransition(s1, ',', s0, s1)
	b.AddTransition(s1, 'ε', s1)
	a, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	text, err := Export(a)
	if err != nil {
		t.Fatal(err)
	}
	expected := `S = {start, 1}
S0 = {start}
T = {1}
A = {a, \,, \ε}
F(start,ε) = {1}
F(start,a) = {1}
F(1,\,) = {start, 1}
F(1,\ε) = {1}
`
	if text != expected {
		t.Fatalf("unexpected text; want:\n%v\ngot:\n%v", expected, text)
	}
}

func TestWrite_InvalidLabel(t *testing.T) {
	b := automaton.NewNFABuilder()
	b.SetInitial(b.AddState("a b"))
	a, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	_, err = Export(a)
	if err == nil {
		t.Fatal("an error is expected")
	}
}

func TestWrite_Origin(t *testing.T) {
	_, dfa, err := lexical.CompileDFA("ab")
	if err != nil {
		t.Fatal(err)
	}
	text, err := Export(dfa)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range dfa.States() {
		origin, ok := dfa.Origin(s)
		if !ok {
			t.Fatalf("state %v has no origin", s)
		}
		// States of a compiled NFA are labelled with their numbers.
		comment := "// " + dfa.Label(s) + " = " + origin.String()
		if !strings.Contains(text, comment+"\n") {
			t.Fatalf("comment #%v is missing: %q\n%v", i, comment, text)
		}
	}
}

func TestWrite_OriginLabels(t *testing.T) {
	nfa, err := Load(strings.NewReader("S = {q0, q1, q2}\nS0 = {q0}\nT = {q2}\nA = {a}\nF(q0,ε) = {q1}\nF(q1,a) = {q2}\n"))
	if err != nil {
		t.Fatal(err)
	}
	d := dfa.Determinize(nfa)
	text, err := Export(d)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(text, "// 0 = {q0, q1}\n// 1 = {q2}\n") {
		t.Fatalf("origins must be shown with the NFA labels:\n%v", text)
	}

	// Labels are kept in a snapshot.
	restored, err := automaton.FromSnapshot(d.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if restored.OriginString(0) != "{q0, q1}" {
		t.Fatalf("unexpected origin of a restored DFA: %v", restored.OriginString(0))
	}
}

func TestExportImport(t *testing.T) {
	tests := []struct {
		caption string
		pattern string
		dead    bool
	}{
		{caption: "a single symbol", pattern: "a"},
		{caption: "an alternation in a repetition", pattern: "a(b|c)*"},
		{caption: "the classic subset construction example", pattern: "(a|b)*abb"},
		{caption: "the empty pattern", pattern: ""},
		{caption: "metacharacters", pattern: `\(\)\|\*\.\\ε`},
		{caption: "characters escaped in grammar text", pattern: "{,}=/ a"},
		{caption: "a total DFA", pattern: "(ab|b)*a", dead: true},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			nfa, dfa, err := lexical.CompileDFA(tt.pattern, lexical.WithDeadState(tt.dead))
			if err != nil {
				t.Fatal(err)
			}
			for _, a := range []*automaton.Automaton{nfa, dfa} {
				text, err := Export(a)
				if err != nil {
					t.Fatal(err)
				}
				b, err := Load(strings.NewReader(text))
				if err != nil {
					t.Fatalf("%v\n%v", err, text)
				}
				testSameStructure(t, a, b)
				for _, input := range genInputs(a, 4) {
					if automaton.Accepts(a, input) != automaton.Accepts(b, input) {
						t.Fatalf("the imported automaton disagrees on %q", input)
					}
				}

				again, err := Export(b)
				if err != nil {
					t.Fatal(err)
				}
				// Origin comments do not survive an import.
				if !strings.HasPrefix(text, again) {
					t.Fatalf("exporting an imported automaton must give the same text; want:\n%v\ngot:\n%v", text, again)
				}
			}
		})
	}
}

func testSameStructure(t *testing.T, expected, actual *automaton.Automaton) {
	t.Helper()

	if actual.NumStates() != expected.NumStates() || actual.NumTransitions() != expected.NumTransitions() {
		t.Fatalf("unexpected automaton; want: %v, got: %v", expected, actual)
	}
	if actual.Initial() != expected.Initial() || !actual.Finals().Equal(expected.Finals()) {
		t.Fatalf("unexpected initial or final states; want: %v %v, got: %v %v", expected.Initial(), expected.Finals(), actual.Initial(), actual.Finals())
	}
	ea := expected.Alphabet()
	aa := actual.Alphabet()
	if len(aa) != len(ea) {
		t.Fatalf("unexpected alphabet; want: %v, got: %v", ea, aa)
	}
	for i := range ea {
		if aa[i] != ea[i] {
			t.Fatalf("unexpected alphabet; want: %v, got: %v", ea, aa)
		}
	}
	for _, s := range expected.States() {
		if actual.Label(s) != expected.Label(s) {
			t.Fatalf("unexpected label; want: %v, got: %v", expected.Label(s), actual.Label(s))
		}
		for _, sym := range expected.Symbols(s) {
			if !actual.Targets(s, sym).Equal(expected.Targets(s, sym)) {
				t.Fatalf("unexpected transition on (%v, %v); want: %v, got: %v", s, sym, expected.Targets(s, sym), actual.Targets(s, sym))
			}
		}
	}
}
