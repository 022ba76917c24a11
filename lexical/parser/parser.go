// Package parser parses a pattern made of literal characters, concatenation, alternation (|), Kleene star (*),
// and grouping into a syntax tree.
//
// The precedence, from lowest to highest, is alternation, concatenation, and star. Concatenation is written
// by juxtaposition, and `.` is accepted as an explicit concatenation operator. The epsilon sentinel (ε by
// default) stands for the empty string. A backslash makes a metacharacter or the sentinel literal.
package parser

import (
	"fmt"
	"io"
)

// DefaultEpsilon is the character a pattern uses to write the empty string.
const DefaultEpsilon = 'ε'

type parser struct {
	epsilon   rune
	lex       *lexer
	peekedTok *token
	lastTok   *token

	errCause  error
	errDetail string
	errPos    int
}

type ParserOption func(p *parser)

// EpsilonSentinel changes the character standing for the empty string.
func EpsilonSentinel(r rune) ParserOption {
	return func(p *parser) {
		p.epsilon = r
	}
}

func NewParser(src io.Reader, opts ...ParserOption) *parser {
	p := &parser{
		epsilon: DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lex = newLexer(src, p.epsilon)
	return p
}

// Parse returns the syntax tree of the whole source. A malformed pattern results in a *ParseError. An
// empty source yields an *EmptyNode.
func (p *parser) Parse() (root Node, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(error)
			if !ok {
				panic(err)
			}
			if retErr == ParseErr {
				retErr = newParseError(p.errCause, p.errDetail, p.errPos)
			}
			root = nil
			return
		}
	}()

	return p.parseRegexp(), nil
}

func (p *parser) parseRegexp() Node {
	if p.consume(tokenKindEOF) {
		return newEmptyNode()
	}
	alt := p.parseAlt()
	if alt == nil {
		if p.consume(tokenKindGroupClose) {
			p.raiseParseError(synErrGroupNoInitiator, "")
		}
		p.raiseParseError(synErrUnexpectedToken, fmt.Sprintf("unexpected %v", p.peekedTok))
	}
	if p.consume(tokenKindGroupClose) {
		p.raiseParseError(synErrGroupNoInitiator, "")
	}
	p.expect(tokenKindEOF)
	return alt
}

func (p *parser) parseAlt() Node {
	left := p.parseConcat()
	if left == nil {
		if p.consume(tokenKindAlt) {
			p.raiseParseError(synErrAltLackOfOperand, "| needs a left operand")
		}
		return nil
	}
	for {
		if !p.consume(tokenKindAlt) {
			break
		}
		right := p.parseConcat()
		if right == nil {
			p.raiseParseError(synErrAltLackOfOperand, "| needs a right operand")
		}
		left = newAltNode(left, right)
	}
	return left
}

func (p *parser) parseConcat() Node {
	left := p.parseRepeat()
	if left == nil {
		if p.consume(tokenKindConcat) {
			p.raiseParseError(synErrConcatNoOperand, ". needs a left operand")
		}
		return nil
	}
	for {
		explicit := p.consume(tokenKindConcat)
		right := p.parseRepeat()
		if right == nil {
			if explicit {
				p.raiseParseError(synErrConcatNoOperand, ". needs a right operand")
			}
			break
		}
		left = newConcatNode(left, right)
	}
	return left
}

func (p *parser) parseRepeat() Node {
	group := p.parseGroup()
	if group == nil {
		if p.consume(tokenKindRepeat) {
			p.raiseParseError(synErrRepNoTarget, "* needs an operand")
		}
		return nil
	}
	for p.consume(tokenKindRepeat) {
		// a** is the same as a*.
		if _, ok := group.(*StarNode); !ok {
			group = newStarNode(group)
		}
	}
	return group
}

func (p *parser) parseGroup() Node {
	if p.consume(tokenKindGroupOpen) {
		openPos := p.lastTok.pos
		alt := p.parseAlt()
		if alt == nil {
			if p.consume(tokenKindGroupClose) {
				p.raiseParseError(synErrGroupNoElem, "")
			}
			if p.consume(tokenKindEOF) {
				p.raiseParseError(synErrGroupUnclosed, fmt.Sprintf("( at position %v is not closed", openPos))
			}
			p.raiseParseError(synErrUnexpectedToken, fmt.Sprintf("unexpected %v", p.peekedTok))
		}
		if p.consume(tokenKindEOF) {
			p.raiseParseError(synErrGroupUnclosed, fmt.Sprintf("( at position %v is not closed", openPos))
		}
		p.expect(tokenKindGroupClose)
		return alt
	}
	return p.parseSingleChar()
}

func (p *parser) parseSingleChar() Node {
	if p.consume(tokenKindChar) {
		n := newSymbolNode(p.lastTok.char)
		n.Pos = p.lastTok.pos
		return n
	}
	if p.consume(tokenKindEpsilon) {
		return newEmptyNode()
	}
	return nil
}

func (p *parser) expect(expected tokenKind) {
	if !p.consume(expected) {
		tok := p.peekedTok
		p.raiseParseError(synErrUnexpectedToken, fmt.Sprintf("expected: %v, actual: %v", expected, tok))
	}
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			if err == ParseErr {
				detail, cause, pos := p.lex.error()
				p.errCause = cause
				p.errDetail = detail
				p.errPos = pos
				panic(ParseErr)
			}
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}

// raiseParseError reports an error at the token consumed last or, when the last attempt to consume failed,
// at the token peeked.
func (p *parser) raiseParseError(err error, detail string) {
	p.errCause = err
	p.errDetail = detail
	switch {
	case p.lastTok != nil:
		p.errPos = p.lastTok.pos
	case p.peekedTok != nil:
		p.errPos = p.peekedTok.pos
	}
	panic(ParseErr)
}
