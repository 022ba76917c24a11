package spec

import (
	"fmt"

	verr "github.com/nihei9/fa/error"
)

type SyntaxError struct {
	message string
	kind    verr.GrammarErrorKind
}

func newSyntaxError(kind verr.GrammarErrorKind, message string) *SyntaxError {
	return &SyntaxError{
		message: message,
		kind:    kind,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

type SemanticError struct {
	message string
	kind    verr.GrammarErrorKind
}

func newSemanticError(kind verr.GrammarErrorKind, message string) *SemanticError {
	return &SemanticError{
		message: message,
		kind:    kind,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	// syntax errors
	synErrInvalidToken          = newSyntaxError(verr.InvalidToken, "invalid token")
	synErrNoSectionName         = newSyntaxError(verr.InvalidToken, "a line must begin with a section name")
	synErrUnknownSection        = newSyntaxError(verr.InvalidToken, "unknown section; a section name must be S, S0, T, A, or F")
	synErrTransitionInvalidForm = newSyntaxError(verr.MalformedSet, "a transition must be written as F(state,symbol)")
	synErrNoEquals              = newSyntaxError(verr.MalformedSet, "= must follow a section name")
	synErrSetNoLBrace           = newSyntaxError(verr.MalformedSet, "a set must begin with {")
	synErrSetUnclosed           = newSyntaxError(verr.MalformedSet, "unclosed set")
	synErrSetNoMember           = newSyntaxError(verr.MalformedSet, "a member is missing")
	synErrSetNoComma            = newSyntaxError(verr.MalformedSet, "members must be separated by commas")
	synErrSectionNoNewline      = newSyntaxError(verr.MalformedSet, "a section must be followed by a newline")

	// semantic errors
	semErrMissingSection      = newSemanticError(verr.MissingSection, "a required section is missing")
	semErrDuplicateSection    = newSemanticError(verr.DuplicateSection, "a section is defined more than once")
	semErrDuplicateTransition = newSemanticError(verr.DuplicateSection, "a transition is defined more than once")
	semErrNoState             = newSemanticError(verr.MalformedSet, "a state set must contain at least one state")
	semErrInvalidStateName    = newSemanticError(verr.MalformedSet, "a state name must consist of [0-9A-Z_a-z]")
	semErrDuplicateMember     = newSemanticError(verr.MalformedSet, "a member appears more than once")
	semErrInitialNotSingleton = newSemanticError(verr.MalformedSet, "an initial state set must contain exactly one state")
	semErrSymbolNotOneChar    = newSemanticError(verr.MalformedSet, "a symbol must be exactly one character")
	semErrEpsilonInAlphabet   = newSemanticError(verr.MalformedSet, "an alphabet cannot contain ε; write \\ε for the character ε")
	semErrUnknownState        = newSemanticError(verr.UnknownStateReference, "a state must be declared in S")
	semErrUnknownSymbol       = newSemanticError(verr.UnknownSymbolReference, "a symbol must be declared in A")
)

func kindOf(err error) verr.GrammarErrorKind {
	switch e := err.(type) {
	case *SyntaxError:
		return e.kind
	case *SemanticError:
		return e.kind
	}
	panic(fmt.Errorf("unknown grammar error: %T", err))
}
