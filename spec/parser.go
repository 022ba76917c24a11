package spec

import (
	"io"

	verr "github.com/nihei9/fa/error"
)

type SectionKind string

const (
	SectionStates     = SectionKind("S")
	SectionInitial    = SectionKind("S0")
	SectionFinals     = SectionKind("T")
	SectionAlphabet   = SectionKind("A")
	SectionTransition = SectionKind("F")
)

type RootNode struct {
	Sections []*SectionNode
}

// SectionNode is one line of grammar text. From and Symbol are set only in a transition section.
type SectionNode struct {
	Kind    SectionKind
	From    *MemberNode
	Symbol  *MemberNode
	Members []*MemberNode
	Pos     Position
}

type MemberNode struct {
	Text    string
	Name    bool
	Epsilon bool
	Pos     Position
}

func raiseSyntaxError(synErr *SyntaxError, detail string, pos Position) {
	panic(&verr.GrammarError{
		Kind:   synErr.kind,
		Cause:  synErr,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

// Parse reads grammar text. A malformed line does not stop the parser; Parse reports every malformed line
// at once as verr.GrammarErrors.
func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
	errs      verr.GrammarErrors
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(error)
			if !ok {
				panic(err)
			}
			root = nil
			return
		}
	}()

	root = &RootNode{}
	for {
		if p.peek(tokenKindEOF) {
			break
		}
		if p.peek(tokenKindNewline) {
			p.next()
			continue
		}
		sec := p.parseSectionOrSkip()
		if sec != nil {
			root.Sections = append(root.Sections, sec)
		}
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return root, nil
}

// parseSectionOrSkip parses one line. When the line is malformed, it records the error and skips the rest
// of the line.
func (p *parser) parseSectionOrSkip() (sec *SectionNode) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		gErr, ok := err.(*verr.GrammarError)
		if !ok {
			panic(err)
		}
		p.errs = append(p.errs, gErr)
		p.skipOverTo(tokenKindNewline)
		sec = nil
	}()

	return p.parseSection()
}

func (p *parser) parseSection() *SectionNode {
	if !p.consume(tokenKindName) {
		p.raiseSyntaxError(synErrNoSectionName, "")
	}
	name := p.lastTok
	sec := &SectionNode{
		Pos: name.pos,
	}
	switch SectionKind(name.text) {
	case SectionStates, SectionInitial, SectionFinals, SectionAlphabet:
		sec.Kind = SectionKind(name.text)
	case SectionTransition:
		sec.Kind = SectionTransition
		if !p.consume(tokenKindLParen) {
			p.raiseSyntaxError(synErrTransitionInvalidForm, "")
		}
		sec.From = p.parseMember()
		if sec.From == nil {
			p.raiseSyntaxError(synErrTransitionInvalidForm, "a state is missing")
		}
		if !p.consume(tokenKindComma) {
			p.raiseSyntaxError(synErrTransitionInvalidForm, "")
		}
		sec.Symbol = p.parseMember()
		if sec.Symbol == nil {
			p.raiseSyntaxError(synErrTransitionInvalidForm, "a symbol is missing")
		}
		if !p.consume(tokenKindRParen) {
			p.raiseSyntaxError(synErrTransitionInvalidForm, "")
		}
	default:
		raiseSyntaxError(synErrUnknownSection, name.text, name.pos)
	}
	if !p.consume(tokenKindEquals) {
		p.raiseSyntaxError(synErrNoEquals, "")
	}
	sec.Members = p.parseSet()
	if !p.consume(tokenKindNewline) && !p.peek(tokenKindEOF) {
		p.raiseSyntaxError(synErrSectionNoNewline, "")
	}
	return sec
}

func (p *parser) parseSet() []*MemberNode {
	if !p.consume(tokenKindLBrace) {
		p.raiseSyntaxError(synErrSetNoLBrace, "")
	}
	members := []*MemberNode{}
	if p.consume(tokenKindRBrace) {
		return members
	}
	for {
		m := p.parseMember()
		if m == nil {
			if p.peek(tokenKindNewline) || p.peek(tokenKindEOF) {
				p.raiseSyntaxError(synErrSetUnclosed, "")
			}
			p.raiseSyntaxError(synErrSetNoMember, "")
		}
		members = append(members, m)
		if p.consume(tokenKindRBrace) {
			return members
		}
		if !p.consume(tokenKindComma) {
			if p.peek(tokenKindNewline) || p.peek(tokenKindEOF) {
				p.raiseSyntaxError(synErrSetUnclosed, "")
			}
			p.raiseSyntaxError(synErrSetNoComma, "")
		}
	}
}

func (p *parser) parseMember() *MemberNode {
	switch {
	case p.consume(tokenKindName):
		return &MemberNode{
			Text: p.lastTok.text,
			Name: true,
			Pos:  p.lastTok.pos,
		}
	case p.consume(tokenKindSymbol):
		return &MemberNode{
			Text: p.lastTok.text,
			Pos:  p.lastTok.pos,
		}
	case p.consume(tokenKindEpsilon):
		return &MemberNode{
			Text:    p.lastTok.text,
			Epsilon: true,
			Pos:     p.lastTok.pos,
		}
	}
	return nil
}

// raiseSyntaxError reports an error at the token consumed last or, when the last attempt to consume failed,
// at the token peeked.
func (p *parser) raiseSyntaxError(synErr *SyntaxError, detail string) {
	var pos Position
	switch {
	case p.lastTok != nil:
		pos = p.lastTok.pos
	case p.peekedTok != nil:
		pos = p.peekedTok.pos
		if detail == "" && p.peekedTok.kind != tokenKindNewline && p.peekedTok.kind != tokenKindEOF {
			detail = "unexpected " + p.peekedTok.String()
		}
	}
	raiseSyntaxError(synErr, detail, pos)
}

func (p *parser) skipOverTo(kind tokenKind) {
	for {
		if p.peek(tokenKindEOF) {
			return
		}
		tok := p.next()
		if tok.kind == kind {
			return
		}
	}
}

func (p *parser) next() *token {
	if p.peekedTok != nil {
		tok := p.peekedTok
		p.peekedTok = nil
		return tok
	}
	tok, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	return tok
}

func (p *parser) peek(expected tokenKind) bool {
	if p.peekedTok == nil {
		p.peekedTok = p.next()
	}
	return p.peekedTok.kind == expected
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.next()
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(synErrInvalidToken, tok.text, tok.pos)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}
