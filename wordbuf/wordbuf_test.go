// Copyright (c) 2024, The yash-go Authors

package wordbuf

import (
	"testing"

	qt "github.com/go-quicktest/qt"
)

func TestNewFragmentSplittability(t *testing.T) {
	f := NewFragment("ab", true)
	qt.Assert(t, qt.DeepEquals(f.Split, []bool{true, true}))

	f = NewFragment("ab", false)
	qt.Assert(t, qt.DeepEquals(f.Split, []bool{false, false}))
}

func TestAppendPreservesMapsInLockstep(t *testing.T) {
	a := NewFragment("ab", true)
	b := NewFragment("cd", false)
	out := Append(a, b)
	qt.Assert(t, qt.Equals(out.String(), "abcd"))
	qt.Assert(t, qt.DeepEquals(out.Split, []bool{true, true, false, false}))
}

func TestBufferRoundTrip(t *testing.T) {
	var b Buffer
	b.WriteString("ab", true)
	b.WriteRune('c', false)
	f := b.Fragment()
	qt.Assert(t, qt.Equals(f.String(), "abc"))
	qt.Assert(t, qt.DeepEquals(f.Split, []bool{true, true, false}))

	b.Reset()
	qt.Assert(t, qt.Equals(b.Len(), 0))
}

func TestQuoteMetaRunesEscapesGlobChars(t *testing.T) {
	qt.Assert(t, qt.Equals(QuoteMetaRunes("a*b?[c]"), `a\*b\?\[c]`))
}

func TestStripBackslashEscapes(t *testing.T) {
	qt.Assert(t, qt.Equals(StripBackslashEscapes(`a\*b\?\[c]`), "a*b?[c]"))
}
