// Copyright (c) 2024, The yash-go Authors

// Package wordbuf provides the growable buffer and quoting primitives
// that the word expander builds fragments out of.
//
// The central datum is Fragment: a rune string paired with a
// byte-for-byte (rune-for-rune) splittability map. A true entry means
// the rune at that position may become a field-split boundary if it
// matches IFS; a false entry means the rune is protected by quoting or
// came from a literal and must never be split on. Every transformation
// that touches a Fragment's text must keep the map the same length and
// move its entries in lockstep, or field splitting silently misbehaves.
package wordbuf

import "strings"

// Fragment is one piece of an expanded word: text plus its
// splittability map.
type Fragment struct {
	Runes []rune
	Split []bool // len(Split) == len(Runes)

	// Force marks that this fragment must survive phase 5 (empty-word
	// preservation) even if Runes is empty, because it originated from
	// an explicit quoting construct ("" or '').
	Force bool
}

// NewFragment builds a Fragment from a string, marking every rune with
// the given splittability.
func NewFragment(s string, splittable bool) Fragment {
	rs := []rune(s)
	split := make([]bool, len(rs))
	if splittable {
		for i := range split {
			split[i] = true
		}
	}
	return Fragment{Runes: rs, Split: split}
}

// String renders the fragment's text, discarding the splittability map.
func (f Fragment) String() string { return string(f.Runes) }

// Len reports the fragment's length in runes.
func (f Fragment) Len() int { return len(f.Runes) }

// Append concatenates b onto a, preserving both maps.
func Append(a, b Fragment) Fragment {
	out := Fragment{
		Runes: make([]rune, 0, len(a.Runes)+len(b.Runes)),
		Split: make([]bool, 0, len(a.Split)+len(b.Split)),
		Force: a.Force || b.Force,
	}
	out.Runes = append(out.Runes, a.Runes...)
	out.Runes = append(out.Runes, b.Runes...)
	out.Split = append(out.Split, a.Split...)
	out.Split = append(out.Split, b.Split...)
	return out
}

// Join concatenates fragments, following the same rule as Append.
func Join(frags ...Fragment) Fragment {
	var out Fragment
	out.Force = false
	for _, f := range frags {
		out = Append(out, f)
	}
	return out
}

// MarkAll sets every rune's splittability to v, in place, and returns
// the fragment for chaining.
func (f Fragment) MarkAll(v bool) Fragment {
	for i := range f.Split {
		f.Split[i] = v
	}
	return f
}

// Buffer is a growable rune buffer used while assembling a fragment
// piecewise (one rune or sub-fragment at a time), mirroring the
// source's xstrbuf_T append-only builder.
type Buffer struct {
	runes []rune
	split []bool
}

// WriteRune appends a single rune with the given splittability.
func (b *Buffer) WriteRune(r rune, splittable bool) {
	b.runes = append(b.runes, r)
	b.split = append(b.split, splittable)
}

// WriteString appends every rune of s with the given splittability.
func (b *Buffer) WriteString(s string, splittable bool) {
	for _, r := range s {
		b.WriteRune(r, splittable)
	}
}

// WriteFragment appends another fragment's runes and map verbatim.
func (b *Buffer) WriteFragment(f Fragment) {
	b.runes = append(b.runes, f.Runes...)
	b.split = append(b.split, f.Split...)
}

// Fragment freezes the buffer's contents into a Fragment. The buffer
// remains usable afterwards; Fragment copies the underlying slices.
func (b *Buffer) Fragment() Fragment {
	out := Fragment{
		Runes: make([]rune, len(b.runes)),
		Split: make([]bool, len(b.split)),
	}
	copy(out.Runes, b.runes)
	copy(out.Split, b.split)
	return out
}

// Reset clears the buffer for reuse.
func (b *Buffer) Reset() {
	b.runes = b.runes[:0]
	b.split = b.split[:0]
}

// Len reports the number of runes currently buffered.
func (b *Buffer) Len() int { return len(b.runes) }

// QuoteMetaRunes backslash-escapes every rune in s that is a shell
// glob metacharacter, so that later phases treat it as literal text.
// This is how Phase 1 (tilde) and Phase 3 (quote flattening) prevent
// substituted text from being re-interpreted as a pattern.
func QuoteMetaRunes(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// StripBackslashEscapes removes backslash escapes that were inserted by
// QuoteMetaRunes or literal quoting, leaving the literal character
// behind. Used by Phase 7 once pattern expansion is done (or skipped).
func StripBackslashEscapes(s string) string {
	var sb strings.Builder
	esc := false
	for _, r := range s {
		if esc {
			sb.WriteRune(r)
			esc = false
			continue
		}
		if r == '\\' {
			esc = true
			continue
		}
		sb.WriteRune(r)
	}
	if esc {
		sb.WriteByte('\\')
	}
	return sb.String()
}
