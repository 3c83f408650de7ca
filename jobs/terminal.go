// Copyright (c) 2024, The yash-go Authors

//go:build unix

package jobs

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal wraps the controlling-terminal file descriptor the shell
// was started with, used to transfer foreground status to and from a
// job's process group (the tcsetpgrp/SIGTTOU dance).
type Terminal struct {
	fd int
}

// NewTerminal returns a Terminal for f, or ok=false if f is not backed
// by a terminal (e.g. the shell's stdin was redirected from a file).
func NewTerminal(f *os.File) (t *Terminal, ok bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, false
	}
	return &Terminal{fd: fd}, true
}

// SetForeground hands the controlling terminal to pgid, blocking
// SIGTTOU on the calling thread for the duration of the call: without
// that, a background shell doing this would stop itself, since
// tcsetpgrp from a non-foreground process group raises SIGTTOU by
// default. The thread's previous signal mask is restored afterwards,
// rather than resetting SIGTTOU's disposition to default, so a caller
// that keeps SIGTTOU ignored across calls (or traps it) doesn't have
// that choice clobbered.
func (t *Terminal) SetForeground(pgid int) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var block, prev unix.Sigset_t
	if err := unix.SigsetAdd(&block, unix.SIGTTOU); err != nil {
		return err
	}
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, &block, &prev); err != nil {
		return err
	}
	defer unix.PthreadSigmask(unix.SIG_SETMASK, &prev, nil)

	return unix.IoctlSetPointerInt(t.fd, unix.TIOCSPGRP, pgid)
}

// Foreground reports the process group currently owning the terminal.
func (t *Terminal) Foreground() (int, error) {
	return unix.IoctlGetInt(t.fd, unix.TIOCGPGRP)
}
