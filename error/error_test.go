package error

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGrammarError_Error(t *testing.T) {
	cause := fmt.Errorf("a state must be declared")

	dir := t.TempDir()
	path := filepath.Join(dir, "g.txt")
	err := os.WriteFile(path, []byte("S = {0}\nF(0,a) = {9}\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		err     *GrammarError
		lines   []string
	}{
		{
			caption: "without a position",
			err: &GrammarError{
				Kind:  MissingSection,
				Cause: cause,
			},
			lines: []string{
				"missing section: a state must be declared",
			},
		},
		{
			caption: "with a position and a detail",
			err: &GrammarError{
				Kind:       UnknownStateReference,
				Cause:      cause,
				Detail:     "9",
				SourceName: "g",
				Row:        2,
				Col:        11,
				Line:       "F(0,a) = {9}",
			},
			lines: []string{
				"g: 2:11: unknown state reference: a state must be declared: 9",
				"    F(0,a) = {9}",
			},
		},
		{
			caption: "with a file path",
			err: &GrammarError{
				Kind:     UnknownStateReference,
				Cause:    cause,
				FilePath: path,
				Row:      2,
			},
			lines: []string{
				"2: unknown state reference: a state must be declared",
				"    F(0,a) = {9}",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			want := strings.Join(tt.lines, "\n")
			if tt.err.Error() != want {
				t.Fatalf("unexpected message;\nwant: %v\ngot:  %v", want, tt.err.Error())
			}
			if !errors.Is(tt.err, cause) {
				t.Fatal("the error must wrap its cause")
			}
		})
	}
}

func TestGrammarErrors(t *testing.T) {
	cause1 := fmt.Errorf("cause 1")
	cause2 := fmt.Errorf("cause 2")
	errs := GrammarErrors{
		{Kind: MalformedSet, Cause: cause1, Row: 1},
		{Kind: InvalidToken, Cause: cause2, Row: 3},
	}
	var err error = errs
	if !errors.Is(err, cause1) || !errors.Is(err, cause2) {
		t.Fatal("every error must be reachable")
	}
	var gErr *GrammarError
	if !errors.As(err, &gErr) || gErr.Kind != MalformedSet {
		t.Fatalf("the first error must be found first; got: %v", gErr)
	}
	want := "2 errors:\n1: malformed set: cause 1\n3: invalid token: cause 2"
	if err.Error() != want {
		t.Fatalf("unexpected message;\nwant: %v\ngot:  %v", want, err.Error())
	}
}
