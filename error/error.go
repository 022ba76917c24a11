// Package error defines the errors reported while loading grammar text. Import it as verr.
package error

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type GrammarErrorKind string

const (
	MissingSection         GrammarErrorKind = "missing section"
	MalformedSet           GrammarErrorKind = "malformed set"
	UnknownStateReference  GrammarErrorKind = "unknown state reference"
	UnknownSymbolReference GrammarErrorKind = "unknown symbol reference"
	DuplicateSection       GrammarErrorKind = "duplicate section"
	InvalidToken           GrammarErrorKind = "invalid token"
)

// GrammarError reports a problem in grammar text. Row and Col are 1-based; a zero Row means the problem
// belongs to no particular line, such as a missing section.
type GrammarError struct {
	Kind       GrammarErrorKind
	Cause      error
	Detail     string
	SourceName string
	FilePath   string
	Row        int
	Col        int

	// Line is the text of the offending line. When it is empty and FilePath is set, Error reads the line
	// from the file.
	Line string
}

func (e *GrammarError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 {
		if e.Col != 0 {
			fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
		} else {
			fmt.Fprintf(&b, "%v: ", e.Row)
		}
	}
	fmt.Fprintf(&b, "%v: %v", e.Kind, e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := e.Line
	if line == "" {
		line = readLine(e.FilePath, e.Row)
	}
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func (e *GrammarError) Unwrap() error {
	return e.Cause
}

// GrammarErrors is every error found in one piece of grammar text, in source order.
type GrammarErrors []*GrammarError

func (e GrammarErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v errors:", len(e))
	for _, err := range e {
		fmt.Fprintf(&b, "\n%v", err)
	}
	return b.String()
}

// Unwrap lets errors.Is and errors.As look into every error.
func (e GrammarErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
