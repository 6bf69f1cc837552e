package errors

import (
	"errors"
	"regexp"
	"testing"
)

func TestNewError(t *testing.T) {
	e := New("sample error message")
	if e == nil {
		t.Errorf("expected non-nil error but got nil")
		return
	}

	errString := e.Error()
	match, err := regexp.Match(`^sample error message: at `, []byte(errString))
	if err != nil {
		t.Error(err)
		return
	}

	if !match {
		t.Errorf("expected %q to carry the caller location", errString)
	}
}

func TestNewEmbeddedError(t *testing.T) {
	errOne := New("sample error message one")
	errTwo := Wrap(errOne, "sample error message two")

	er := errors.Unwrap(errTwo)
	if er != errOne {
		t.Errorf("expected %v to be equal to %v", er, errOne)
	}
}

func TestWrappedSentinel(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "wrap keeps sentinel", err: Wrap(ErrUnknownAgent, `lookup failed`), target: ErrUnknownAgent, want: true},
		{name: "errorf with %w keeps sentinel", err: Errorf(`tool %q: %w`, `calc`, ErrUnknownTool), target: ErrUnknownTool, want: true},
		{name: "different sentinel", err: Wrap(ErrEmptyQuery, `search`), target: ErrUnknownTool, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Is(tc.err, tc.target); got != tc.want {
				t.Errorf("Is(%v, %v) = %v; want %v", tc.err, tc.target, got, tc.want)
			}
		})
	}
}

func TestFilePath(t *testing.T) {
	path := filePath()

	if path == "" {
		t.Fatalf("expected non-empty string but got empty string")
	}

	pattern := `^at testing.tRunner.*`
	match, err := regexp.Match(pattern, []byte(path))
	if err != nil {
		t.Error(err)
	}

	if !match {
		t.Fatalf("expected %q to match %q", path, pattern)
	}
}
