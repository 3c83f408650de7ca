// Copyright (c) 2024, The yash-go Authors

package format

import (
	"testing"

	qt "github.com/go-quicktest/qt"
)

func TestPrintfReapplied(t *testing.T) {
	prog, err := Compile("%s\n")
	qt.Assert(t, qt.IsNil(err))
	out, bad, stopped := RunAll(prog, []string{"a", "b", "c"})
	qt.Assert(t, qt.IsFalse(bad))
	qt.Assert(t, qt.IsFalse(stopped))
	qt.Assert(t, qt.Equals(string(out), "a\nb\nc\n"))
}

func TestPrintfReappliedPerArgument(t *testing.T) {
	// "%d " with 1 2 3 produces "1 2 3 ".
	prog, err := Compile("%d ")
	qt.Assert(t, qt.IsNil(err))
	out, _, _ := RunAll(prog, []string{"1", "2", "3"})
	qt.Assert(t, qt.Equals(string(out), "1 2 3 "))
}

func TestPrintfEscapedStringTruncates(t *testing.T) {
	// printf "%b" "a\cbc" produces "a", remaining format
	// ignored, further arguments not consumed.
	prog, err := Compile("%b")
	qt.Assert(t, qt.IsNil(err))
	out, _, stopped := RunAll(prog, []string{`a\cbc`})
	qt.Assert(t, qt.IsTrue(stopped))
	qt.Assert(t, qt.Equals(string(out), "a"))
}

func TestPrintfNoInfiniteLoopOnArglessFormat(t *testing.T) {
	prog, err := Compile("fixed")
	qt.Assert(t, qt.IsNil(err))
	out, _, stopped := RunAll(prog, nil)
	qt.Assert(t, qt.IsFalse(stopped))
	qt.Assert(t, qt.Equals(string(out), "fixed"))
}

func TestPrintfMissingArgDefaults(t *testing.T) {
	prog, err := Compile("[%s][%d]")
	qt.Assert(t, qt.IsNil(err))
	out, _, _ := RunAll(prog, nil)
	qt.Assert(t, qt.Equals(string(out), "[][0]"))
}

func TestPrintfWidthAndZeroPad(t *testing.T) {
	prog, err := Compile("%05d")
	qt.Assert(t, qt.IsNil(err))
	out, _, _ := RunAll(prog, []string{"42"})
	qt.Assert(t, qt.Equals(string(out), "00042"))
}

func TestPrintfHashRejectedOnInt(t *testing.T) {
	_, err := Compile("%#d")
	qt.Assert(t, qt.IsTrue(err != nil))
}

func TestPrintfZeroRejectedOnString(t *testing.T) {
	_, err := Compile("%0s")
	qt.Assert(t, qt.IsTrue(err != nil))
}

func TestPrintfBackslashEscapesInFormat(t *testing.T) {
	prog, err := Compile(`a\tb\n`)
	qt.Assert(t, qt.IsNil(err))
	out, _, _ := RunAll(prog, nil)
	qt.Assert(t, qt.Equals(string(out), "a\tb\n"))
}

func TestEchoBSDSuppressesNewline(t *testing.T) {
	out, code := Echo(BSD, []string{"-n", "x"})
	qt.Assert(t, qt.Equals(code, 0))
	qt.Assert(t, qt.Equals(string(out), "x"))
}

func TestEchoSysVInterpretsEscapes(t *testing.T) {
	out, _ := Echo(SysV, []string{`a\tb`})
	qt.Assert(t, qt.Equals(string(out), "a\tb\n"))
}

func TestEchoGNURequiresEForEscape(t *testing.T) {
	out, _ := Echo(GNU, []string{`a\tb`})
	qt.Assert(t, qt.Equals(string(out), `a\tb`+"\n"))
	out, _ = Echo(GNU, []string{"-e", `a\tb`})
	qt.Assert(t, qt.Equals(string(out), "a\tb\n"))
}

func TestEchoJoinsWithSingleSpace(t *testing.T) {
	out, _ := Echo(RAW, []string{"a", "b", "c"})
	qt.Assert(t, qt.Equals(string(out), "a b c\n"))
}
