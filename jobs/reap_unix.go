// Copyright (c) 2024, The yash-go Authors

//go:build unix

package jobs

import (
	"golang.org/x/sys/unix"
)

// Reap drains every exited or stopped child visible to wait4(WNOHANG),
// updating the matching Process/Job entries in the table. It returns
// the job numbers whose folded status changed, so the caller (the
// "jobs" builtin, or the prompt's job-change notice) knows what to
// report.
//
// Updates the Go Table directly rather than a C-style array of
// job pointers.
func (t *Table) Reap() []int {
	t.mu.Lock()
	byPid := make(map[int]*Process, len(t.jobs))
	jobOf := make(map[int]*Job, len(t.jobs))
	for _, j := range t.jobs {
		for _, p := range j.Processes {
			byPid[p.Pid] = p
			jobOf[p.Pid] = j
		}
	}
	t.mu.Unlock()

	touched := map[int]*Job{}
	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
		if err != nil || pid <= 0 {
			break
		}
		p, ok := byPid[pid]
		if !ok {
			continue
		}
		applyWaitStatus(p, ws)
		if j, ok := jobOf[pid]; ok {
			touched[j.Number] = j
		}
	}

	out := make([]int, 0, len(touched))
	for n, j := range touched {
		if fold := j.Status(); fold != j.folded {
			j.folded = fold
			j.Changed = true
			out = append(out, n)
		}
	}
	if len(out) > 0 {
		// A process transitioning to or from Stopped can invalidate the
		// current/previous invariants (spec.md §3: "if any job is
		// Stopped, current_job points at a Stopped job"); re-enforce
		// them now rather than waiting for the next Add/Remove.
		t.mu.Lock()
		t.normalizeLocked(0)
		t.mu.Unlock()
	}
	return out
}

// applyWaitStatus folds a wait4 status into a Process. FreeBSD's kernel
// can report WIFCONTINUED and WIFSIGNALED together for the same
// status word when a continued-then-killed transition is coalesced;
// WIFSIGNALED takes precedence in that case, since a dead process
// outranks a "still running" report.
func applyWaitStatus(p *Process, ws unix.WaitStatus) {
	switch {
	case ws.Signaled():
		p.Status = Done
		p.Signal = int(ws.Signal())
		p.CoreDump = ws.CoreDump()
	case ws.Exited():
		p.Status = Done
		p.ExitCode = ws.ExitStatus()
	case ws.Stopped():
		p.Status = Stopped
		p.Signal = int(ws.StopSignal())
	case ws.Continued():
		p.Status = Running
		p.Signal = 0
	}
}
