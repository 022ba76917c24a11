package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nihei9/fa/automaton"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindName    = tokenKind("name")
	tokenKindSymbol  = tokenKind("symbol")
	tokenKindEpsilon = tokenKind("ε")
	tokenKindLParen  = tokenKind("(")
	tokenKindRParen  = tokenKind(")")
	tokenKindComma   = tokenKind(",")
	tokenKindEquals  = tokenKind("=")
	tokenKindLBrace  = tokenKind("{")
	tokenKindRBrace  = tokenKind("}")
	tokenKindNewline = tokenKind("newline")
	tokenKindEOF     = tokenKind("eof")
	tokenKindInvalid = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func (t *token) String() string {
	switch t.kind {
	case tokenKindName, tokenKindSymbol, tokenKindInvalid:
		return fmt.Sprintf("%v %q", t.kind, t.text)
	}
	return string(t.kind)
}

func newToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

// lexEntries defines the tokens of grammar text. When several entries match the same longest text, the
// entry defined first wins, so a one-letter name is a name rather than a symbol.
var lexEntries = []*mlspec.LexEntry{
	{Kind: "white_space", Pattern: `[\u{0009}\u{0020}]+`},
	{Kind: "newline", Pattern: `\u{000A}|\u{000D}\u{000A}|\u{000D}`},
	{Kind: "line_comment", Pattern: `//[^\u{000A}\u{000D}]*`},
	{Kind: "l_paren", Pattern: `\(`},
	{Kind: "r_paren", Pattern: `\)`},
	{Kind: "comma", Pattern: `,`},
	{Kind: "equals", Pattern: `=`},
	{Kind: "l_brace", Pattern: `{`},
	{Kind: "r_brace", Pattern: `}`},
	{Kind: "name", Pattern: `[0-9A-Z_a-z]+`},
	{Kind: "epsilon", Pattern: `ε`},
	{Kind: "escaped_char", Pattern: `\\[^\u{000A}\u{000D}]`},
	// A backslash escaping nothing stops before the line break so that the parser still sees the newline.
	{Kind: "lone_backslash", Pattern: `\\`},
	{Kind: "char", Pattern: `[^\u{0009}\u{000A}\u{000D}\u{0020}{}(),=\\]`},
}

var (
	compiledLexSpec    *mlspec.CompiledLexSpec
	compiledLexSpecErr error
	compileLexSpecOnce sync.Once
)

func lexSpec() (*mlspec.CompiledLexSpec, error) {
	compileLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name:    "fa_grammar",
			Entries: lexEntries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				for i, cErr := range cErrs {
					if i > 0 {
						fmt.Fprintf(&b, "\n")
					}
					fmt.Fprintf(&b, "%v: %v", cErr.Kind, cErr.Cause)
					if cErr.Detail != "" {
						fmt.Fprintf(&b, ": %v", cErr.Detail)
					}
				}
				err = fmt.Errorf("failed to compile the lexical specification: %v", b.String())
			}
			compiledLexSpecErr = err
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compiledLexSpecErr
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := lexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

// next returns the next token skipping white spaces and comments. Positions are 1-based.
func (l *lexer) next() (*token, error) {
	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		pos := newPosition(tok.Row+1, tok.Col+1)
		if tok.EOF {
			return newToken(tokenKindEOF, "", pos), nil
		}
		text := string(tok.Lexeme)
		if tok.Invalid {
			return newToken(tokenKindInvalid, text, pos), nil
		}

		switch l.s.KindNames[tok.KindID].String() {
		case "white_space", "line_comment":
			continue
		case "newline":
			return newToken(tokenKindNewline, "", pos), nil
		case "l_paren":
			return newToken(tokenKindLParen, text, pos), nil
		case "r_paren":
			return newToken(tokenKindRParen, text, pos), nil
		case "comma":
			return newToken(tokenKindComma, text, pos), nil
		case "equals":
			return newToken(tokenKindEquals, text, pos), nil
		case "l_brace":
			return newToken(tokenKindLBrace, text, pos), nil
		case "r_brace":
			return newToken(tokenKindRBrace, text, pos), nil
		case "name":
			return newToken(tokenKindName, text, pos), nil
		case "epsilon":
			return newToken(tokenKindEpsilon, text, pos), nil
		case "escaped_char":
			// Remove '\' character.
			return newToken(tokenKindSymbol, unescape(text[1:]), pos), nil
		case "char":
			return newToken(tokenKindSymbol, text, pos), nil
		case "lone_backslash":
			return newToken(tokenKindInvalid, text, pos), nil
		default:
			return newToken(tokenKindInvalid, text, pos), nil
		}
	}
}

var unescapedChars = map[string]string{
	"n": "\n",
	"r": "\r",
	"t": "\t",
}

func unescape(c string) string {
	if u, ok := unescapedChars[c]; ok {
		return u
	}
	return c
}

// escape returns a symbol in a form the lexer reads back as the same symbol.
func escape(sym string) string {
	switch sym {
	case "\n":
		return `\n`
	case "\r":
		return `\r`
	case "\t":
		return `\t`
	case " ", ",", "{", "}", "(", ")", "=", "\\", "/", automaton.EpsilonText:
		return `\` + sym
	}
	return sym
}
