// Copyright (c) 2024, The yash-go Authors

// Package pattern compiles shell pattern-matching notation (wildcards,
// bracket expressions, and the extended "**" path form) to a
// [*regexp.Regexp] and applies it under one of three match modes.
//
// The pattern-to-regexp translation is mvdan.cc/sh/v3/pattern's; what
// this package adds is the mode/anchor layer POSIX parameter expansion
// needs on top of it. In particular, shortest-suffix removal
// (${var%pat}) can't be expressed as a plain leftmost regexp search: a
// tail anchor alone leaves the start of the match unconstrained, so
// "shortest" and "longest" suffix both read as "the earliest position
// that reaches the end". Compile builds a different expression for
// that case; see the anchorTail branch below.
//
// For reference, see
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html#tag_18_13.
package pattern

import (
	"regexp"

	shpattern "mvdan.cc/sh/v3/pattern"
)

// MatchMode selects how a compiled Pattern is applied to a candidate
// string.
type MatchMode uint8

const (
	// Whole requires the pattern to consume the entire string.
	Whole MatchMode = iota
	// Longest finds the longest matching prefix.
	Longest
	// Shortest finds the shortest non-empty matching prefix.
	Shortest
)

// Flags are orthogonal modifiers on pattern compilation.
type Flags uint

const (
	CaseFold  Flags = 1 << iota // case-insensitive match
	HeadOnly                    // anchor the match at the start of the string
	TailOnly                    // anchor the match at the end of the string
	Recursive                   // support the extended "**" path pattern
)

// Pattern is a compiled shell pattern, ready to be matched repeatedly.
type Pattern struct {
	re     *regexp.Regexp
	MinLen int // lower bound on the length of any matching string
}

// SyntaxError reports a malformed pattern. It is propagated to the
// caller rather than retried.
type SyntaxError struct {
	msg string
	err error
}

func (e *SyntaxError) Error() string { return e.msg }
func (e *SyntaxError) Unwrap() error { return e.err }

// Compile translates pat into a Pattern under the given mode and
// flags. A malformed pattern yields a non-nil *SyntaxError.
func Compile(pat string, mode MatchMode, flags Flags) (*Pattern, error) {
	var tm shpattern.Mode
	if flags&CaseFold != 0 {
		tm |= shpattern.NoGlobCase
	}
	if flags&Recursive != 0 {
		tm |= shpattern.Filenames
	}
	if mode == Shortest {
		tm |= shpattern.Shortest
	}

	body, err := shpattern.Regexp(pat, tm)
	if err != nil {
		if se, ok := err.(*shpattern.SyntaxError); ok {
			return nil, &SyntaxError{msg: se.Error(), err: se.Unwrap()}
		}
		return nil, &SyntaxError{msg: "invalid pattern", err: err}
	}

	anchorHead := mode == Whole || flags&HeadOnly != 0
	anchorTail := mode == Whole || flags&TailOnly != 0

	var exprSrc string
	switch {
	case anchorHead && anchorTail:
		exprSrc = "^(" + body + ")$"
	case anchorHead:
		exprSrc = "^(" + body + ")"
	case anchorTail:
		if mode == Shortest {
			// A greedy ".*" in front eats as much of the string as
			// the rest of the expression allows, pushing the capture
			// to the right-most position where it still matches —
			// the shortest possible suffix.
			exprSrc = ".*(" + body + ")$"
		} else {
			// No ".*" prefix: search finds the left-most start that
			// still reaches the end, and the body's own greedy
			// quantifiers consume as much as possible from there,
			// together giving the longest suffix.
			exprSrc = "(" + body + ")$"
		}
	default:
		exprSrc = "(" + body + ")"
	}

	re, err := regexp.Compile(exprSrc)
	if err != nil {
		return nil, &SyntaxError{msg: "invalid pattern", err: err}
	}
	return &Pattern{re: re, MinLen: minLength(pat)}, nil
}

// ErrNoMatch is returned by Find when the pattern does not match the
// candidate under the requested mode.
var ErrNoMatch = noMatchError{}

type noMatchError struct{}

func (noMatchError) Error() string { return "pattern: no match" }

// Find returns the [start, end) byte-index span of the match for the
// pattern's mode against s, or ErrNoMatch.
func (p *Pattern) Find(s string) (start, end int, err error) {
	if len(s) < p.MinLen {
		return 0, 0, ErrNoMatch
	}
	loc := p.re.FindStringSubmatchIndex(s)
	if loc == nil || loc[2] < 0 {
		return 0, 0, ErrNoMatch
	}
	return loc[2], loc[3], nil
}

// Match reports whether s matches under the pattern's compiled mode.
func (p *Pattern) Match(s string) bool {
	_, _, err := p.Find(s)
	return err == nil
}

// HasMeta reports whether pat contains any unescaped '*', '?' or '['.
func HasMeta(pat string) bool { return shpattern.HasMeta(pat, 0) }

// QuoteMeta escapes every pattern metacharacter in text so that the
// result matches text literally.
func QuoteMeta(text string) string { return shpattern.QuoteMeta(text, 0) }

// minLength is a lower bound on the number of bytes any string
// matching pat could have: every literal rune, '?', and bracket
// expression counts for at least one; '*' and "**" count for zero. It
// lets Find reject strings too short to match without invoking the
// regexp engine.
func minLength(pat string) int {
	n := 0
	for i := 0; i < len(pat); i++ {
		switch pat[i] {
		case '\\':
			if i+1 < len(pat) {
				i++
				n++
			}
		case '*':
			for i+1 < len(pat) && pat[i+1] == '*' {
				i++
			}
		case '[':
			n++
			j := i + 1
			if j < len(pat) && (pat[j] == '!' || pat[j] == '^') {
				j++
			}
			for j < len(pat) && pat[j] != ']' {
				j++
			}
			i = j
		default:
			n++
		}
	}
	return n
}
