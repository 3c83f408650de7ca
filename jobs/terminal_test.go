// Copyright (c) 2024, The yash-go Authors

//go:build unix

package jobs

import (
	"os"
	"testing"

	"github.com/creack/pty"
	qt "github.com/go-quicktest/qt"
)

// TestNewTerminalPseudo checks that a real pseudo-terminal is recognised
// as one, and that a plain pipe is not, mirroring the slave/master split
// the teacher's own pty-backed terminal tests use.
func TestNewTerminalPseudo(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	term, ok := NewTerminal(tty)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(term != nil))

	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer pr.Close()
	defer pw.Close()

	_, ok = NewTerminal(pw)
	qt.Assert(t, qt.IsFalse(ok))
}

// TestTerminalForegroundRoundtrip exercises SetForeground/Foreground
// against a pty's controlling process group, the same tcsetpgrp dance
// §4.7 describes for foreground transfer.
func TestTerminalForegroundRoundtrip(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	term, ok := NewTerminal(tty)
	qt.Assert(t, qt.IsTrue(ok))

	pgid, err := term.Foreground()
	if err != nil {
		t.Skipf("pty has no foreground pgrp in this sandbox: %v", err)
	}
	if err := term.SetForeground(pgid); err != nil {
		t.Fatalf("SetForeground(%d): %v", pgid, err)
	}
	got, err := term.Foreground()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, pgid))
}
