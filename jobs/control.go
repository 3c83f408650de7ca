// Copyright (c) 2024, The yash-go Authors

//go:build unix

package jobs

import (
	"context"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/vigoux/yash/sigarb"
)

// Controller ties a Table to the shell's controlling terminal, backing
// the fg/bg/wait/disown builtins.
type Controller struct {
	Table *Table
	Term  *Terminal // nil if the shell has no controlling terminal

	// SigArb, when set, lets WaitForJob block on the signal arbiter's
	// sigchld-rendezvous (spec.md §4.7/§5) instead of polling Reap on a
	// fixed interval. nil keeps the polling fallback, which still works
	// correctly (just less promptly) when no arbiter is wired up.
	SigArb *sigarb.Arbiter
}

// Foreground brings job j to the foreground: transfers the terminal to
// its pgid, sends SIGCONT if it was stopped, then blocks until it
// stops or exits, restoring the shell's own foreground status
// afterwards.
func (c *Controller) Foreground(j *Job) (Status, error) {
	if c.Term != nil && j.Pgid != 0 {
		if err := c.Term.SetForeground(j.Pgid); err != nil {
			return Running, err
		}
		defer func() {
			shellPgid := unix.Getpgrp()
			_ = c.Term.SetForeground(shellPgid)
		}()
	}
	if j.Status() == Stopped {
		if err := j.Signal(syscall.SIGCONT); err != nil {
			return Running, err
		}
		for _, p := range j.Processes {
			if p.Status == Stopped {
				p.Status = Running
			}
		}
	}
	return c.WaitForJob(context.Background(), j), nil
}

// Background resumes a stopped job in the background (SIGCONT without
// any terminal transfer), the "bg" builtin's behavior.
func (c *Controller) Background(j *Job) error {
	if j.Status() != Stopped {
		return nil
	}
	if err := j.Signal(syscall.SIGCONT); err != nil {
		return err
	}
	for _, p := range j.Processes {
		if p.Status == Stopped {
			p.Status = Running
		}
	}
	return nil
}

// WaitForJob blocks, reaping children, until j is no longer Running.
// When c.SigArb is set it rendezvous on the signal arbiter's
// WaitForSIGCHLD between reap attempts (spec.md §4.7's "composes with
// the Signal Arbiter's sigchld-rendezvous"); otherwise it falls back
// to polling Reap at a short fixed interval, which must also work when
// this method is called outside any arbiter's watch (e.g. a
// synchronous "wait" builtin invocation with no arbiter configured).
func (c *Controller) WaitForJob(ctx context.Context, j *Job) Status {
	for {
		c.Table.Reap()
		if st := j.Status(); st != Running {
			return st
		}
		if c.SigArb == nil {
			select {
			case <-ctx.Done():
				return j.Status()
			case <-time.After(10 * time.Millisecond):
			}
			continue
		}
		woke := make(chan struct{})
		go func() {
			c.SigArb.WaitForSIGCHLD(false, nil)
			close(woke)
		}()
		select {
		case <-ctx.Done():
			return j.Status()
		case <-woke:
		}
	}
}

// Disown removes a job from the table without signaling it, so the
// shell no longer reports on or waits for it, even though its
// process group keeps running (the "disown" builtin).
func (c *Controller) Disown(j *Job) {
	j.Disowned = true
	c.Table.Remove(j.Number)
}
