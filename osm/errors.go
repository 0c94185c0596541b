package osm

import (
	"fmt"
	"strings"
)

// Kind classifies a fatal failure of the parse or reduce stage.
type Kind int

const (
	KindIO Kind = iota + 1
	KindSyntax
	KindStructural
	KindAttribute
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindSyntax:
		return "syntax"
	case KindStructural:
		return "structural"
	case KindAttribute:
		return "attribute"
	case KindConfiguration:
		return "configuration"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrIO            = &Error{Kind: KindIO}
	ErrSyntax        = &Error{Kind: KindSyntax}
	ErrStructural    = &Error{Kind: KindStructural}
	ErrAttribute     = &Error{Kind: KindAttribute}
	ErrConfiguration = &Error{Kind: KindConfiguration}
)

// Error is the single error type returned by loading and reduction.
type Error struct {
	Kind Kind

	// Element is the offending element name, if any.
	Element string
	// Attr is the missing or malformed attribute.
	Attr string
	// Value carries the offending value, e.g. an unknown road class.
	Value string

	// Line and Column are 1-based and zero when unknown.
	Line, Column int

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d column %d", e.Line, e.Column)
	}
	switch e.Kind {
	case KindStructural:
		fmt.Fprintf(&b, ": unexpected element %q", e.Element)
	case KindAttribute:
		fmt.Fprintf(&b, ": element %q attribute %q", e.Element, e.Attr)
	case KindConfiguration:
		if e.Value != "" {
			fmt.Fprintf(&b, ": %q", e.Value)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
