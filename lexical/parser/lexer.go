package parser

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

type tokenKind string

const (
	tokenKindChar       tokenKind = "char"
	tokenKindEpsilon    tokenKind = "epsilon"
	tokenKindConcat     tokenKind = "."
	tokenKindRepeat     tokenKind = "*"
	tokenKindAlt        tokenKind = "|"
	tokenKindGroupOpen  tokenKind = "("
	tokenKindGroupClose tokenKind = ")"
	tokenKindEOF        tokenKind = "eof"
)

type token struct {
	kind tokenKind
	char rune

	// pos is the 1-based position, counted in characters, of the first character of the token.
	pos int
}

func (t *token) String() string {
	if t.kind == tokenKindChar {
		return fmt.Sprintf("%q", t.char)
	}
	return string(t.kind)
}

const nullChar = '\u0000'

func newToken(kind tokenKind, char rune, pos int) *token {
	return &token{
		kind: kind,
		char: char,
		pos:  pos,
	}
}

type lexer struct {
	src        *bufio.Reader
	epsilon    rune
	pos        int
	reachedEOF bool

	errCause  error
	errDetail string
	errPos    int
}

func newLexer(src io.Reader, epsilon rune) *lexer {
	return &lexer{
		src:     bufio.NewReader(src),
		epsilon: epsilon,
	}
}

func (l *lexer) error() (string, error, int) {
	return l.errDetail, l.errCause, l.errPos
}

func (l *lexer) next() (*token, error) {
	c, eof, err := l.read()
	if err != nil {
		return nil, err
	}
	if eof {
		return newToken(tokenKindEOF, nullChar, l.pos+1), nil
	}
	pos := l.pos

	switch c {
	case '*':
		return newToken(tokenKindRepeat, nullChar, pos), nil
	case '.':
		return newToken(tokenKindConcat, nullChar, pos), nil
	case '|':
		return newToken(tokenKindAlt, nullChar, pos), nil
	case '(':
		return newToken(tokenKindGroupOpen, nullChar, pos), nil
	case ')':
		return newToken(tokenKindGroupClose, nullChar, pos), nil
	case l.epsilon:
		return newToken(tokenKindEpsilon, nullChar, pos), nil
	case '\\':
		c, eof, err := l.read()
		if err != nil {
			return nil, err
		}
		if eof {
			l.errCause = synErrIncompletedEscSeq
			l.errPos = pos
			return nil, ParseErr
		}
		switch c {
		case '*', '.', '|', '(', ')', '\\', l.epsilon:
			return newToken(tokenKindChar, c, pos), nil
		}
		l.errCause = synErrInvalidEscSeq
		l.errDetail = fmt.Sprintf("\\%v is not supported", string(c))
		l.errPos = pos
		return nil, ParseErr
	}
	return newToken(tokenKindChar, c, pos), nil
}

func (l *lexer) read() (rune, bool, error) {
	if l.reachedEOF {
		return nullChar, true, nil
	}
	c, size, err := l.src.ReadRune()
	if err != nil {
		if err == io.EOF {
			l.reachedEOF = true
			return nullChar, true, nil
		}
		return nullChar, false, err
	}
	l.pos++
	// ReadRune turns a malformed byte into U+FFFD of size 1. A well-formed U+FFFD is 3 bytes long.
	if c == utf8.RuneError && size == 1 {
		l.errCause = synErrInvalidUTF8
		l.errPos = l.pos
		return nullChar, false, ParseErr
	}
	return c, false, nil
}
