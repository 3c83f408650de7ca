// Copyright (c) 2024, The yash-go Authors

// Package jobs implements the process launcher and job table:
// starting a pipeline under its own
// process group, tracking each job's processes and status, and
// transferring the controlling terminal between the shell and its
// foreground job.
//
// Process-group creation goes through syscall.SysProcAttr, and each
// stage is started with exec.CommandContext, so cancelling the launch
// context kills that stage's process; the model is generalized from
// "one process, no job table" to full multi-process job control.
package jobs

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Status is a job's or a process's folded run state.
type Status uint8

const (
	Running Status = iota
	Stopped
	Done
)

// Process is one member of a job's pipeline.
type Process struct {
	Pid      int
	Status   Status
	ExitCode int  // valid when Status == Done
	Signal   int  // signal that stopped or killed the process, 0 if none
	CoreDump bool // WCOREDUMP, only meaningful alongside a terminating Signal
}

// StatusString renders a process's status the way "jobs -l" does.
func (p *Process) StatusString() string {
	switch p.Status {
	case Running:
		return "Running"
	case Stopped:
		return fmt.Sprintf("Stopped(SIG%s)", signalName(p.Signal))
	default:
		if p.Signal != 0 {
			s := fmt.Sprintf("Killed (SIG%s", signalName(p.Signal))
			if p.CoreDump {
				s += ": core dumped"
			}
			return s + ")"
		}
		if p.ExitCode == 0 {
			return "Done"
		}
		return fmt.Sprintf("Done(%d)", p.ExitCode)
	}
}

// Job is one job-controlled pipeline: a process group tracked as a
// single unit of foreground/background/stopped state.
type Job struct {
	Number    int
	Pgid      int // 0 means not job-controlled
	Command   string
	Processes []*Process
	Disowned  bool

	// Changed tracks status_changed: set whenever the job's folded
	// Status transitions, cleared by the notification reporter
	// (the "jobs" builtin) once it has reported on it.
	Changed bool

	// Nonotify suppresses notification reporting while the shell is
	// synchronously waiting on this job.
	Nonotify bool

	folded Status // last folded status observed by Table.Reap
}

// ClearChanged clears the Changed flag, as done by the "jobs" builtin
// once it has reported a job's status.
func (j *Job) ClearChanged() { j.Changed = false }

// Status folds a job's process statuses into one: Running if any
// process is still running, Stopped if none are running but at least
// one is stopped, Done otherwise.
func (j *Job) Status() Status {
	anyStopped := false
	for _, p := range j.Processes {
		switch p.Status {
		case Running:
			return Running
		case Stopped:
			anyStopped = true
		}
	}
	if anyStopped {
		return Stopped
	}
	return Done
}

// StatusString renders the job's folded status, taking the last
// process's detail string for Done/Stopped (matching the shell's
// convention of reporting the pipeline's last stage).
func (j *Job) StatusString() string {
	switch j.Status() {
	case Running:
		return "Running"
	default:
		if len(j.Processes) == 0 {
			return "Done"
		}
		return j.Processes[len(j.Processes)-1].StatusString()
	}
}

// Table is the shell's job list: current/previous job tracking plus
// normalization invariants (job numbers are reused once a job is
// removed; current/previous always point at valid, distinct entries
// when more than one job exists).
type Table struct {
	mu          sync.Mutex
	jobs        map[int]*Job
	nextNumber  int
	current     int
	previous    int
	POSIX       bool
	Log         *logrus.Logger
}

// NewTable returns an empty job table.
func NewTable() *Table {
	return &Table{
		jobs:       make(map[int]*Job),
		nextNumber: 1,
		Log:        logrus.New(),
	}
}

// Add registers a newly launched job as the new current job and
// returns its assigned number, reusing the lowest free slot. This is
// the common case: a freshly backgrounded pipeline is, by default,
// "the" job a bare fg/bg/% refers to next. Callers that need the full
// make-current rule (e.g. a job that was launched and immediately
// waited for synchronously, and so should not necessarily displace an
// existing current job) use AddAsCurrent with asCurrent=false.
func (t *Table) Add(j *Job) int {
	return t.AddAsCurrent(j, true)
}

// AddAsCurrent registers a newly launched job, applying the
// make-current rule: a Stopped job always becomes current; otherwise
// it becomes current only if asCurrent is true, or if there was no
// current job and no job is currently Stopped.
func (t *Table) AddAsCurrent(j *Job, asCurrent bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 1
	for {
		if _, used := t.jobs[n]; !used {
			break
		}
		n++
	}
	j.Number = n
	j.folded = j.Status()
	t.jobs[n] = j

	makeCurrent := asCurrent
	if j.folded == Stopped {
		makeCurrent = true
	} else if !makeCurrent && t.current == 0 && !t.anyStoppedLocked() {
		makeCurrent = true
	}
	if makeCurrent {
		t.normalizeLocked(n)
	} else {
		t.normalizeLocked(0)
	}
	if t.Log != nil {
		t.Log.WithFields(logrus.Fields{"job": n, "pgid": j.Pgid}).Debug("job added")
	}
	return n
}

// anyStoppedLocked reports whether any job in the table is currently
// Stopped. Callers must hold t.mu.
func (t *Table) anyStoppedLocked() bool {
	for _, j := range t.jobs {
		if j.Status() == Stopped {
			return true
		}
	}
	return false
}

// Remove deletes a job from the table (used once it is reaped and its
// status has been reported), then renormalizes current/previous.
func (t *Table) Remove(number int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, number)
	if t.current == number {
		t.current = 0
	}
	if t.previous == number {
		t.previous = 0
	}
	t.normalizeLocked(0)
}

// normalizeLocked restores every current/previous invariant from
// spec.md §3: current must name an existing job and must be Stopped
// whenever any job is Stopped; previous must differ from current and,
// when two or more jobs are Stopped, must itself be Stopped. justAdded,
// when non-zero, is folded in as the provisional new current before
// the invariants are (re-)enforced, matching the make-current rule's
// "becomes current" outcome; 0 means "just re-validate", used after a
// Remove or a Reap-driven status change.
func (t *Table) normalizeLocked(justAdded int) {
	if justAdded != 0 {
		if t.current != 0 && t.current != justAdded {
			t.previous = t.current
		}
		t.current = justAdded
	}

	anyStopped := t.anyStoppedLocked()
	if cur, ok := t.jobs[t.current]; t.current == 0 || !ok || (anyStopped && cur.Status() != Stopped) {
		t.current = t.pickNextLocked(0, anyStopped)
	}

	needStoppedPrev := t.countStoppedLocked() >= 2
	if prev, ok := t.jobs[t.previous]; t.previous == 0 || t.previous == t.current || !ok || (needStoppedPrev && prev.Status() != Stopped) {
		t.previous = t.pickNextLocked(t.current, needStoppedPrev)
	}
}

// pickNextLocked is the "arbitrary next-job picker" of spec.md §4.7:
// prefer the current value of previous (if it still qualifies), then
// any Stopped job scanned from the highest index down, then any job.
// exclude is never returned. Callers must hold t.mu.
func (t *Table) pickNextLocked(exclude int, requireStopped bool) int {
	if t.previous != 0 && t.previous != exclude {
		if j, ok := t.jobs[t.previous]; ok && (!requireStopped || j.Status() == Stopped) {
			return t.previous
		}
	}
	if requireStopped {
		best := 0
		for n, j := range t.jobs {
			if n == exclude || j.Status() != Stopped {
				continue
			}
			if n > best {
				best = n
			}
		}
		if best != 0 {
			return best
		}
	}
	best := 0
	for n := range t.jobs {
		if n == exclude {
			continue
		}
		if n > best {
			best = n
		}
	}
	return best
}

// countStoppedLocked returns how many jobs are currently Stopped.
// Callers must hold t.mu.
func (t *Table) countStoppedLocked() int {
	n := 0
	for _, j := range t.jobs {
		if j.Status() == Stopped {
			n++
		}
	}
	return n
}

// Get returns the job with the given number.
func (t *Table) Get(number int) (*Job, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	j, ok := t.jobs[number]
	return j, ok
}

// All returns every job in the table, ordered by job number.
func (t *Table) All() []*Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Job, 0, len(t.jobs))
	for _, j := range t.jobs {
		out = append(out, j)
	}
	for i := 1; i < len(out); i++ {
		for k := i; k > 0 && out[k].Number < out[k-1].Number; k-- {
			out[k], out[k-1] = out[k-1], out[k]
		}
	}
	return out
}

// Current returns the current job's number, 0 if none.
func (t *Table) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Previous returns the previous job's number, 0 if none.
func (t *Table) Previous() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.previous
}
