// Copyright (c) 2024, The yash-go Authors

package builtin

import (
	"fmt"

	"github.com/vigoux/yash/jobs"
)

// Fg implements "fg [job...]": bring one job to the foreground,
// wait for it, and reclaim the terminal on completion.
// POSIX mode accepts at most one argument.
func Fg(ctx Context, argv []string) int {
	if ctx.Ctl == nil {
		fmt.Fprintln(ctx.Stderr, "fg: no job control")
		return ExitFailure
	}
	if ctx.POSIX && len(argv) > 1 {
		fmt.Fprintln(ctx.Stderr, "fg: too many arguments")
		return ExitUsage
	}
	spec := ""
	if len(argv) > 0 {
		spec = argv[0]
	}
	j, err := ctx.Table.Resolve(spec)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "fg: %v\n", err)
		return ExitNotFound
	}
	fmt.Fprintf(ctx.Stdout, "%s\n", j.Command)
	st, err := ctx.Ctl.Foreground(j)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "fg: %v\n", err)
		return ExitFailure
	}
	return jobExitCode(j, st)
}

// Bg implements "bg [job...]": resume one or more stopped jobs in
// the background via SIGCONT, without any terminal transfer.
func Bg(ctx Context, argv []string) int {
	if ctx.Ctl == nil {
		fmt.Fprintln(ctx.Stderr, "bg: no job control")
		return ExitFailure
	}
	specs := argv
	if len(specs) == 0 {
		specs = []string{""}
	}
	failed := false
	for _, spec := range specs {
		j, err := ctx.Table.Resolve(spec)
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "bg: %v\n", err)
			failed = true
			continue
		}
		if err := ctx.Ctl.Background(j); err != nil {
			fmt.Fprintf(ctx.Stderr, "bg: %v\n", err)
			failed = true
			continue
		}
		fmt.Fprintf(ctx.Stdout, "[%d]+ %s &\n", j.Number, j.Command)
	}
	if failed {
		return ExitFailure
	}
	return ExitSuccess
}

// jobExitCode renders a job's final status as a shell exit code: the
// last pipeline member's exit code, 128+signal if it was killed by a
// signal, or 0 if the job stopped again rather than finishing.
func jobExitCode(j *jobs.Job, st jobs.Status) int {
	if st == jobs.Stopped {
		return 0
	}
	if len(j.Processes) == 0 {
		return 0
	}
	last := j.Processes[len(j.Processes)-1]
	if last.Signal != 0 && last.Status == jobs.Done {
		return exitSignalOffset + last.Signal
	}
	return last.ExitCode
}
