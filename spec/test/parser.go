// Package test reads acceptance test cases. A test case consists of three parts separated by lines of
// dashes: a description, the automaton under test, and the expected results.
//
//	Strings over {a, b, c} beginning with a
//	---
//	pattern "a(b|c)*"
//	---
//	accept "a" "abbcbc"
//	reject "" "b"
//
// The automaton is either a pattern or a grammar file written as `grammar "path"`. A relative path is
// relative to the directory containing the test case. Strings use the escape sequences of Go string
// literals, and lines beginning with // are comments.
package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type Source struct {
	Pos       lexer.Position
	Pattern   *string `parser:"( 'pattern' @String"`
	Grammar   *string `parser:"| 'grammar' @String )"`
	DeadState bool    `parser:"@'dead_state'?"`
}

type Expectations struct {
	Entries []*Expectation `parser:"@@*"`
}

type Expectation struct {
	Pos    lexer.Position
	Kind   string   `parser:"@( 'accept' | 'reject' )"`
	Inputs []string `parser:"@String+"`
}

func (e *Expectation) Accept() bool {
	return e.Kind == "accept"
}

var testLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "Keyword", Pattern: `[A-Za-z_][0-9A-Za-z_]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var (
	sourceParser = participle.MustBuild[Source](
		participle.Lexer(testLexer),
		participle.Unquote("String"),
		participle.Elide("Comment", "Whitespace"),
	)
	expectationsParser = participle.MustBuild[Expectations](
		participle.Lexer(testLexer),
		participle.Unquote("String"),
		participle.Elide("Comment", "Whitespace"),
	)
)

type TestCase struct {
	Description  string
	Source       *Source
	Expectations []*Expectation
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	srcOffset := parts[0].lineCount + 1
	src, err := sourceParser.ParseBytes("", parts[1].buf)
	if err != nil {
		return nil, shiftError(err, srcOffset)
	}
	src.Pos.Line += srcOffset

	expOffset := srcOffset + parts[1].lineCount + 1
	exps, err := expectationsParser.ParseBytes("", parts[2].buf)
	if err != nil {
		return nil, shiftError(err, expOffset)
	}
	for _, e := range exps.Entries {
		e.Pos.Line += expOffset
	}

	return &TestCase{
		Description:  string(parts[0].buf),
		Source:       src,
		Expectations: exps.Entries,
	}, nil
}

// shiftError makes the line number of a parse error count from the beginning of the test case.
func shiftError(err error, lineOffset int) error {
	pErr, ok := err.(participle.Error)
	if !ok {
		return err
	}
	pos := pErr.Position()
	return fmt.Errorf("%v:%v: %v", pos.Line+lineOffset, pos.Column, pErr.Message())
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
