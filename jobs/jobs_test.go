// Copyright (c) 2024, The yash-go Authors

package jobs

import (
	"testing"

	qt "github.com/go-quicktest/qt"
)

func newProc(pid int, status Status) *Process {
	return &Process{Pid: pid, Status: status}
}

func TestStatusFold(t *testing.T) {
	j := &Job{Processes: []*Process{newProc(1, Done), newProc(2, Running), newProc(3, Stopped)}}
	qt.Assert(t, qt.Equals(j.Status(), Running))

	j = &Job{Processes: []*Process{newProc(1, Done), newProc(2, Stopped)}}
	qt.Assert(t, qt.Equals(j.Status(), Stopped))

	j = &Job{Processes: []*Process{newProc(1, Done), newProc(2, Done)}}
	qt.Assert(t, qt.Equals(j.Status(), Done))
}

func TestTableAddReusesLowestFreeSlot(t *testing.T) {
	table := NewTable()
	n1 := table.Add(&Job{Command: "a"})
	n2 := table.Add(&Job{Command: "b"})
	qt.Assert(t, qt.Equals(n1, 1))
	qt.Assert(t, qt.Equals(n2, 2))

	table.Remove(n1)
	n3 := table.Add(&Job{Command: "c"})
	qt.Assert(t, qt.Equals(n3, 1))
}

func TestTableCurrentPreviousInvariant(t *testing.T) {
	table := NewTable()
	table.Add(&Job{Command: "a"})
	table.Add(&Job{Command: "b"})
	qt.Assert(t, qt.Equals(table.Current(), 2))
	qt.Assert(t, qt.Equals(table.Previous(), 1))

	table.Remove(2)
	qt.Assert(t, qt.Equals(table.Current(), 1))
}

func TestResolveBySpecialForms(t *testing.T) {
	table := NewTable()
	table.Add(&Job{Command: "sleep 1"})
	table.Add(&Job{Command: "vi file"})

	j, err := table.Resolve("")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(j.Number, 2))

	j, err = table.Resolve("-")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(j.Number, 1))

	j, err = table.Resolve("%vi")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(j.Number, 2))

	_, err = table.Resolve("%nonexistent")
	qt.Assert(t, qt.IsTrue(err != nil))
}

func TestResolveAmbiguous(t *testing.T) {
	table := NewTable()
	table.Add(&Job{Command: "make build"})
	table.Add(&Job{Command: "make test"})

	_, err := table.Resolve("%make")
	qt.Assert(t, qt.IsTrue(err != nil))
}

func TestResolvePid(t *testing.T) {
	table := NewTable()
	j := &Job{Command: "sleep 1", Processes: []*Process{{Pid: 555, Status: Running}}}
	table.Add(j)

	gotJob, gotProc, ok := table.ResolvePid(555)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(gotJob, j))
	qt.Assert(t, qt.Equals(gotProc.Pid, 555))

	_, _, ok = table.ResolvePid(999)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestTableMakeCurrentStoppedWins(t *testing.T) {
	table := NewTable()
	table.Add(&Job{Command: "sleep 1", Processes: []*Process{newProc(1, Running)}})
	// Committed as non-current, but it is Stopped, so it must still
	// become current (spec.md §4.7: "If the committed job is Stopped,
	// it becomes current_job unconditionally").
	n2 := table.AddAsCurrent(&Job{Command: "vi file", Processes: []*Process{newProc(2, Stopped)}}, false)
	qt.Assert(t, qt.Equals(table.Current(), n2))
}

func TestTableMakeCurrentNonDefaultLeavesCurrentAlone(t *testing.T) {
	table := NewTable()
	n1 := table.Add(&Job{Command: "sleep 1", Processes: []*Process{newProc(1, Running)}})
	// No Stopped job exists and a current already exists, so a
	// non-as_current, non-Stopped commit must not displace it.
	table.AddAsCurrent(&Job{Command: "sleep 2", Processes: []*Process{newProc(2, Running)}}, false)
	qt.Assert(t, qt.Equals(table.Current(), n1))
}

func TestTableRenormalizeOnStatusChange(t *testing.T) {
	table := NewTable()
	j1 := &Job{Command: "sleep 1", Processes: []*Process{newProc(1, Running)}}
	j2 := &Job{Command: "sleep 2", Processes: []*Process{newProc(2, Running)}}
	n1 := table.Add(j1)
	n2 := table.Add(j2)
	qt.Assert(t, qt.Equals(table.Current(), n2))

	// j1 stops without going through Add/Remove, while j2 (the
	// Running, still-current job) keeps running. Current must move to
	// the Stopped job once the table is renormalized, per spec.md §3:
	// "if any job is Stopped, current_job points at a Stopped job".
	j1.Processes[0].Status = Stopped
	table.mu.Lock()
	table.normalizeLocked(0)
	table.mu.Unlock()
	qt.Assert(t, qt.Equals(table.Current(), n1))
}

func TestProcessStatusString(t *testing.T) {
	p := &Process{Status: Done, ExitCode: 0}
	qt.Assert(t, qt.Equals(p.StatusString(), "Done"))

	p = &Process{Status: Done, ExitCode: 2}
	qt.Assert(t, qt.Equals(p.StatusString(), "Done(2)"))
}
