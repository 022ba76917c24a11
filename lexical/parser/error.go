package parser

import "fmt"

var (
	ParseErr = fmt.Errorf("parse error")

	// lexical errors
	synErrIncompletedEscSeq = fmt.Errorf("incompleted escape sequence; unexpected EOF following \\")
	synErrInvalidEscSeq     = fmt.Errorf("invalid escape sequence")
	synErrInvalidUTF8       = fmt.Errorf("invalid UTF-8 encoding")

	// syntax errors
	synErrUnexpectedToken  = fmt.Errorf("unexpected token")
	synErrRepNoTarget      = fmt.Errorf("a repeat expression must have an operand")
	synErrConcatNoOperand  = fmt.Errorf("a concatenation expression must have operands")
	synErrAltLackOfOperand = fmt.Errorf("an alternation expression must have operands")
	synErrGroupNoElem      = fmt.Errorf("a grouping expression must include at least one character")
	synErrGroupUnclosed    = fmt.Errorf("unclosed grouping expression")
	synErrGroupNoInitiator = fmt.Errorf(") needs preceding (")
)

type ParseErrorKind string

const (
	UnbalancedParens ParseErrorKind = "unbalanced parentheses"
	UnexpectedToken  ParseErrorKind = "unexpected token"
	EmptyPattern     ParseErrorKind = "empty pattern"
)

var cause2Kind = map[error]ParseErrorKind{
	synErrIncompletedEscSeq: UnexpectedToken,
	synErrInvalidEscSeq:     UnexpectedToken,
	synErrInvalidUTF8:       UnexpectedToken,
	synErrUnexpectedToken:   UnexpectedToken,
	synErrRepNoTarget:       UnexpectedToken,
	synErrConcatNoOperand:   UnexpectedToken,
	synErrAltLackOfOperand:  EmptyPattern,
	synErrGroupNoElem:       EmptyPattern,
	synErrGroupUnclosed:     UnbalancedParens,
	synErrGroupNoInitiator:  UnbalancedParens,
}

// ParseError reports a malformed pattern. Pos is the 1-based position, counted in characters, of the
// offending character; it equals the pattern length plus one when the pattern ends too early.
type ParseError struct {
	Kind   ParseErrorKind
	Pos    int
	Cause  error
	Detail string
}

func newParseError(cause error, detail string, pos int) *ParseError {
	kind, ok := cause2Kind[cause]
	if !ok {
		kind = UnexpectedToken
	}
	return &ParseError{
		Kind:   kind,
		Pos:    pos,
		Cause:  cause,
		Detail: detail,
	}
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %v: %v (at position %v)", e.Kind, e.Cause, e.Detail, e.Pos)
	}
	return fmt.Sprintf("%v: %v (at position %v)", e.Kind, e.Cause, e.Pos)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
