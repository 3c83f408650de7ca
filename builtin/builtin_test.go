// Copyright (c) 2024, The yash-go Authors

package builtin

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/vigoux/yash/format"
	"github.com/vigoux/yash/jobs"
)

func newTestContext() (Context, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Context{
		Table:     jobs.NewTable(),
		Stdout:    &out,
		Stderr:    &errOut,
		EchoStyle: format.SysV,
	}, &out, &errOut
}

func TestPrintfBasic(t *testing.T) {
	ctx, out, errOut := newTestContext()
	code := Printf(ctx, []string{"%s\n", "a", "b", "c"})
	qt.Assert(t, qt.Equals(code, ExitSuccess))
	qt.Assert(t, qt.Equals(out.String(), "a\nb\nc\n"))
	qt.Assert(t, qt.Equals(errOut.String(), ""))
}

func TestPrintfEscapedStringStop(t *testing.T) {
	ctx, out, _ := newTestContext()
	code := Printf(ctx, []string{"%b", `a\cbc`})
	qt.Assert(t, qt.Equals(code, ExitSuccess))
	qt.Assert(t, qt.Equals(out.String(), "a"))
}

func TestPrintfMissingOperand(t *testing.T) {
	ctx, _, _ := newTestContext()
	code := Printf(ctx, nil)
	qt.Assert(t, qt.Equals(code, ExitUsage))
}

func TestEchoSuppressesNewline(t *testing.T) {
	ctx, out, _ := newTestContext()
	ctx.EchoStyle = format.BSD
	code := Echo(ctx, []string{"-n", "x"})
	qt.Assert(t, qt.Equals(code, ExitSuccess))
	qt.Assert(t, qt.Equals(out.String(), "x"))
}

func addJob(table *jobs.Table, pgid int, command string, status jobs.Status, exitCode int) *jobs.Job {
	j := &jobs.Job{Pgid: pgid, Command: command, Processes: []*jobs.Process{
		{Pid: pgid, Status: status, ExitCode: exitCode},
	}}
	table.Add(j)
	return j
}

func TestJobsListsCurrentMarker(t *testing.T) {
	ctx, out, _ := newTestContext()
	addJob(ctx.Table, 100, "sleep 1", jobs.Stopped, 0)
	addJob(ctx.Table, 200, "sleep 2", jobs.Stopped, 0)

	code := Jobs(ctx, nil)
	qt.Assert(t, qt.Equals(code, ExitSuccess))
	lines := out.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(lines, "[1] - ")))
	qt.Assert(t, qt.IsTrue(strings.Contains(lines, "[2] + ")))
}

func TestJobsUnknownSpecIndependent(t *testing.T) {
	ctx, out, errOut := newTestContext()
	addJob(ctx.Table, 100, "sleep 1", jobs.Done, 0)

	code := Jobs(ctx, []string{"%nope", "%1"})
	qt.Assert(t, qt.Equals(code, ExitFailure))
	qt.Assert(t, qt.IsTrue(strings.Contains(errOut.String(), "no such job")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out.String(), "[1]")))
}

func TestDisownRemovesJob(t *testing.T) {
	ctx, _, _ := newTestContext()
	ctx.Ctl = &jobs.Controller{Table: ctx.Table}
	addJob(ctx.Table, 100, "sleep 1", jobs.Done, 0)

	code := Disown(ctx, nil)
	qt.Assert(t, qt.Equals(code, ExitSuccess))
	_, ok := ctx.Table.Get(1)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestResolveWaitTargetByPid(t *testing.T) {
	ctx, _, _ := newTestContext()
	j := addJob(ctx.Table, 4242, "sleep 1", jobs.Done, 0)

	got, err := resolveWaitTarget(ctx, "4242")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, j))
}

func TestWaitNotFoundExitsOneTwentySeven(t *testing.T) {
	ctx, _, _ := newTestContext()
	ctx.Ctl = &jobs.Controller{Table: ctx.Table}

	code := Wait(ctx, []string{"9999999"})
	qt.Assert(t, qt.Equals(code, ExitNotFound))
}

func TestJobExitCodeFromSignal(t *testing.T) {
	j := &jobs.Job{Processes: []*jobs.Process{{Status: jobs.Done, Signal: 9}}}
	qt.Assert(t, qt.Equals(jobExitCode(j, jobs.Done), exitSignalOffset+9))
}
