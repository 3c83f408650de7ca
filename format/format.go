// Copyright (c) 2024, The yash-go Authors

// Package format implements the printf/echo formatted-output engine:
// a format string is compiled once into a small program of typed
// conversion directives, then run repeatedly against
// an argument stream.
//
// The directive/program split follows the
// closed tagged-union style seen elsewhere in this module
// (expand/ast's sealed Unit interface)
// rather than a one-shot string transform, since the program must be
// compiled once and run repeatedly.
package format

import "fmt"

// Kind discriminates the shape of a Conv directive's argument.
type Kind uint8

const (
	String Kind = iota
	Char
	SignedInt
	UnsignedInt
	Float
	EscapedString
)

// ConvSpec is a compiled conversion specification: the flags, width,
// and precision parsed between '%' and the conversion character.
type ConvSpec struct {
	Hash, Zero, Minus, Plus, Space bool
	Width                          int
	HasWidth                       bool
	Precision                      int
	HasPrecision                   bool
	Verb                           byte // original conversion character: d,i,u,o,x,X,f,F,e,E,g,G,c,s
}

// Directive is the closed set of Format Program node kinds: Raw,
// Percent, and Conv.
type Directive interface {
	isDirective()
}

// Raw is literal output bytes produced by escape-sequence processing
// of the format string's non-conversion text.
type Raw struct{ Bytes []byte }

func (Raw) isDirective() {}

// Percent is the literal "%%" directive: it never consumes an
// argument.
type Percent struct{}

func (Percent) isDirective() {}

// Conv is a single conversion directive.
type Conv struct {
	Kind Kind
	Spec ConvSpec

	// EscWidth/EscMax/EscLeft are populated only for Kind ==
	// EscapedString (the "%b" directive), which additionally carries a
	// parsed width, a maximum output length, and a left-justify flag
	// and is the only directive that interprets its argument's escape
	// sequences.
	EscWidth int
	EscMax   int
	EscLeft  bool
}

func (Conv) isDirective() {}

// Program is an ordered list of directives, parsed once per printf
// invocation and then consumed repeatedly.
type Program struct {
	Directives []Directive
}

// SyntaxError reports a malformed format string, detected at compile
// time.
type SyntaxError struct{ Msg string }

func (e *SyntaxError) Error() string { return e.Msg }

func syntaxErrorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}
