package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is matched by errors.Is when the summary could not be read.
	ErrIO = errors.New("summary unreadable")
	// ErrMalformed is matched by errors.Is when the summary has a structural error.
	ErrMalformed = errors.New("malformed summary")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError reports why a summary could not be turned into an outline.
// Line is 1-indexed and Text is the raw offending line; both are unset for
// KindIO errors.
type ParseError struct {
	Kind   ErrorKind
	Path   string
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Kind == KindIO {
		if e.Path != "" {
			return fmt.Sprintf("read summary %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("read summary: %v", e.Err)
	}

	where := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("%s: %s: %s: %q", ErrMalformed, where, e.Reason, e.Text)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	sentinel := ErrMalformed
	if e.Kind == KindIO {
		sentinel = ErrIO
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

func malformed(line int, text, reason string) *ParseError {
	return &ParseError{Kind: KindMalformed, Line: line, Text: text, Reason: reason}
}
