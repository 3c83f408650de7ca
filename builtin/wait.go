// Copyright (c) 2024, The yash-go Authors

package builtin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vigoux/yash/jobs"
)

// Wait implements "wait [job-or-pid...]": for every named job (or
// every job, if none are named) it blocks in Controller.WaitForJob
// until the job is no longer Running, so a job that stops ends the
// wait for it just as finishing does. It returns the exit status of
// the last one waited for (0 if that job stopped, 128+signal if it
// was killed by a signal), or 127 if that id cannot be resolved.
// A trapped signal does not end the wait early.
// For wait alone, a bare positive integer may denote a pid instead of
// a job number ("For wait only" in the job-identifier grammar).
func Wait(ctx Context, argv []string) int {
	if ctx.Ctl == nil {
		fmt.Fprintln(ctx.Stderr, "wait: no job control")
		return ExitFailure
	}

	targets := argv
	if len(targets) == 0 {
		for _, j := range ctx.Table.All() {
			targets = append(targets, strconv.Itoa(j.Number))
		}
	}

	code := ExitSuccess
	for _, spec := range targets {
		j, err := resolveWaitTarget(ctx, spec)
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "wait: %v\n", err)
			code = ExitNotFound
			continue
		}
		st := ctx.Ctl.WaitForJob(context.Background(), j)
		code = jobExitCode(j, st)
	}
	return code
}

func resolveWaitTarget(ctx Context, spec string) (*jobs.Job, error) {
	if j, err := ctx.Table.Resolve(spec); err == nil {
		return j, nil
	}
	if pid, err := strconv.Atoi(spec); err == nil && pid > 0 {
		if j, _, ok := ctx.Table.ResolvePid(pid); ok {
			return j, nil
		}
	}
	return nil, fmt.Errorf("%s: no such job or process", spec)
}
