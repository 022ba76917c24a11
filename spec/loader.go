package spec

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/nihei9/fa/automaton"
	verr "github.com/nihei9/fa/error"
)

type loadConfig struct {
	sourceName string
	filePath   string
}

type LoadOption func(c *loadConfig)

// SourceName sets the name error messages show for the grammar text.
func SourceName(name string) LoadOption {
	return func(c *loadConfig) {
		c.sourceName = name
	}
}

// FilePath tells the loader the file the grammar text came from.
func FilePath(path string) LoadOption {
	return func(c *loadConfig) {
		c.filePath = path
		if c.sourceName == "" {
			c.sourceName = path
		}
	}
}

// Load reads grammar text and builds an NFA from it directly.
//
// Sections may appear in any order. S, S0, T, and A are required and appear once each; F lines are optional.
// Every state a section refers to must be declared in S, and every symbol must be declared in A. A transition
// may use ε as its symbol. States keep the names the text declares, in the declared order, and so does the
// alphabet.
//
// Load reports every problem it finds at once as verr.GrammarErrors. It returns no automaton in that case.
func Load(src io.Reader, opts ...LoadOption) (*automaton.Automaton, error) {
	c := &loadConfig{}
	for _, opt := range opts {
		opt(c)
	}

	text, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	a, err := load(text)
	if err != nil {
		var gErrs verr.GrammarErrors
		if errors.As(err, &gErrs) {
			lines := strings.Split(strings.ReplaceAll(string(text), "\r\n", "\n"), "\n")
			for _, e := range gErrs {
				e.SourceName = c.sourceName
				e.FilePath = c.filePath
				if e.Row > 0 && e.Row <= len(lines) {
					e.Line = lines[e.Row-1]
				}
			}
		}
		return nil, err
	}
	slog.Debug("loaded a grammar", "source", c.sourceName, "states", a.NumStates(), "symbols", len(a.Alphabet()), "transitions", a.NumTransitions())
	return a, nil
}

func load(text []byte) (*automaton.Automaton, error) {
	root, err := Parse(bytes.NewReader(text))
	if err != nil {
		return nil, err
	}
	l := newLoader()
	return l.load(root)
}

type transitionKey struct {
	from automaton.State
	sym  automaton.Symbol
}

type loader struct {
	b            *automaton.Builder
	errs         verr.GrammarErrors
	label2State  map[string]automaton.State
	alphabet     *automaton.Alphabet
	transitions  map[transitionKey]struct{}
	stateKnown   bool
	symbolsKnown bool
}

func newLoader() *loader {
	return &loader{
		b:           automaton.NewNFABuilder(),
		label2State: map[string]automaton.State{},
		alphabet:    automaton.NewAlphabet(),
		transitions: map[transitionKey]struct{}{},
	}
}

func (l *loader) semanticError(semErr *SemanticError, detail string, pos Position) {
	l.errs = append(l.errs, &verr.GrammarError{
		Kind:   kindOf(semErr),
		Cause:  semErr,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

func (l *loader) load(root *RootNode) (*automaton.Automaton, error) {
	sections := map[SectionKind]*SectionNode{}
	var trans []*SectionNode
	for _, sec := range root.Sections {
		if sec.Kind == SectionTransition {
			trans = append(trans, sec)
			continue
		}
		if _, ok := sections[sec.Kind]; ok {
			l.semanticError(semErrDuplicateSection, string(sec.Kind), sec.Pos)
			continue
		}
		sections[sec.Kind] = sec
	}
	for _, kind := range []SectionKind{SectionStates, SectionInitial, SectionFinals, SectionAlphabet} {
		if _, ok := sections[kind]; !ok {
			l.semanticError(semErrMissingSection, string(kind), Position{})
		}
	}

	// States and symbols are declared before anything refers to them, whatever the order of the lines.
	if sec, ok := sections[SectionStates]; ok {
		l.declareStates(sec)
	}
	if sec, ok := sections[SectionAlphabet]; ok {
		l.declareAlphabet(sec)
	}
	if sec, ok := sections[SectionInitial]; ok {
		if len(sec.Members) != 1 {
			l.semanticError(semErrInitialNotSingleton, "", sec.Pos)
		} else if s, ok := l.lookUpState(sec.Members[0]); ok {
			l.b.SetInitial(s)
		}
	}
	if sec, ok := sections[SectionFinals]; ok {
		for _, m := range sec.Members {
			if s, ok := l.lookUpState(m); ok {
				l.b.AddFinal(s)
			}
		}
	}
	for _, sec := range trans {
		l.addTransition(sec)
	}

	if len(l.errs) > 0 {
		sort.SliceStable(l.errs, func(i, j int) bool {
			if l.errs[i].Row != l.errs[j].Row {
				return l.errs[i].Row < l.errs[j].Row
			}
			return l.errs[i].Col < l.errs[j].Col
		})
		return nil, l.errs
	}
	return l.b.Build()
}

func (l *loader) declareStates(sec *SectionNode) {
	if len(sec.Members) == 0 {
		l.semanticError(semErrNoState, "", sec.Pos)
		return
	}
	l.stateKnown = true
	for _, m := range sec.Members {
		if !m.Name {
			l.semanticError(semErrInvalidStateName, m.Text, m.Pos)
			continue
		}
		if _, ok := l.label2State[m.Text]; ok {
			l.semanticError(semErrDuplicateMember, m.Text, m.Pos)
			continue
		}
		l.label2State[m.Text] = l.b.AddState(m.Text)
	}
}

func (l *loader) declareAlphabet(sec *SectionNode) {
	l.symbolsKnown = true
	for _, m := range sec.Members {
		if m.Epsilon {
			l.semanticError(semErrEpsilonInAlphabet, "", m.Pos)
			continue
		}
		sym, ok := toSymbol(m.Text)
		if !ok {
			l.semanticError(semErrSymbolNotOneChar, m.Text, m.Pos)
			continue
		}
		if !l.alphabet.Add(sym) {
			l.semanticError(semErrDuplicateMember, m.Text, m.Pos)
			continue
		}
		l.b.AddSymbol(sym)
	}
}

// lookUpState reports an unknown state only when S itself is valid, so that a broken S does not cause an
// error for every reference.
func (l *loader) lookUpState(m *MemberNode) (automaton.State, bool) {
	s, ok := l.label2State[m.Text]
	if !ok && l.stateKnown {
		l.semanticError(semErrUnknownState, m.Text, m.Pos)
	}
	return s, ok
}

func (l *loader) lookUpSymbol(m *MemberNode) (automaton.Symbol, bool) {
	if m.Epsilon {
		return automaton.Epsilon, true
	}
	sym, ok := toSymbol(m.Text)
	if !ok || !l.alphabet.Contains(sym) {
		if l.symbolsKnown {
			l.semanticError(semErrUnknownSymbol, m.Text, m.Pos)
		}
		return 0, false
	}
	return sym, true
}

func (l *loader) addTransition(sec *SectionNode) {
	from, fromOK := l.lookUpState(sec.From)
	sym, symOK := l.lookUpSymbol(sec.Symbol)
	var to []automaton.State
	toOK := true
	for _, m := range sec.Members {
		s, ok := l.lookUpState(m)
		if !ok {
			toOK = false
			continue
		}
		to = append(to, s)
	}
	if !fromOK || !symOK || !toOK {
		return
	}
	key := transitionKey{
		from: from,
		sym:  sym,
	}
	if _, ok := l.transitions[key]; ok {
		l.semanticError(semErrDuplicateTransition, "F("+sec.From.Text+","+sec.Symbol.Text+")", sec.Pos)
		return
	}
	l.transitions[key] = struct{}{}
	l.b.AddTransition(from, sym, to...)
}

func toSymbol(text string) (automaton.Symbol, bool) {
	r, size := utf8.DecodeRuneInString(text)
	if (r == utf8.RuneError && size <= 1) || size != len(text) {
		return 0, false
	}
	return automaton.Symbol(r), true
}
