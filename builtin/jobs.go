// Copyright (c) 2024, The yash-go Authors

package builtin

import (
	"fmt"

	"github.com/vigoux/yash/jobs"
)

// Jobs implements the "jobs [-lnprs] [job...]" builtin: print the
// jobs named by argv, or every job if none are named, one line per
// job in the "[%d] %c %-20s %ls\n" format (only the spacing is
// locale-sensitive,
// never the letters). POSIX mode restricts the flag set to -l -p.
func Jobs(ctx Context, argv []string) int {
	var long, onlyChanged, pidsOnly, runningOnly, stoppedOnly bool
	i := 0
	for ; i < len(argv); i++ {
		a := argv[i]
		if len(a) < 2 || a[0] != '-' {
			break
		}
		if a == "--" {
			i++
			break
		}
		for _, f := range a[1:] {
			if ctx.POSIX && f != 'l' && f != 'p' {
				fmt.Fprintf(ctx.Stderr, "jobs: -%c: not allowed in POSIX mode\n", f)
				return ExitUsage
			}
			switch f {
			case 'l':
				long = true
			case 'n':
				onlyChanged = true
			case 'p':
				pidsOnly = true
			case 'r':
				runningOnly = true
			case 's':
				stoppedOnly = true
			default:
				fmt.Fprintf(ctx.Stderr, "jobs: invalid option -%c\n", f)
				return ExitUsage
			}
		}
	}

	jobList, failed := resolveJobArgs(ctx, argv[i:])

	cur, prev := ctx.Table.Current(), ctx.Table.Previous()
	for _, j := range jobList {
		if onlyChanged && !j.Changed {
			continue
		}
		switch j.Status() {
		case jobs.Running:
			if stoppedOnly {
				continue
			}
		case jobs.Stopped:
			if runningOnly {
				continue
			}
		default:
			if runningOnly || stoppedOnly {
				continue
			}
		}

		if pidsOnly {
			if len(j.Processes) > 0 {
				fmt.Fprintf(ctx.Stdout, "%d\n", j.Processes[len(j.Processes)-1].Pid)
			}
			j.ClearChanged()
			continue
		}

		marker := byte(' ')
		switch j.Number {
		case cur:
			marker = '+'
		case prev:
			marker = '-'
		}

		prefix := ""
		if long && j.Pgid != 0 {
			prefix = fmt.Sprintf("%d ", j.Pgid)
		}
		fmt.Fprintf(ctx.Stdout, "[%d] %c %s%-20s %s\n", j.Number, marker, prefix, j.StatusString(), j.Command)
		j.ClearChanged()
	}
	if failed {
		return ExitFailure
	}
	return ExitSuccess
}

// resolveJobArgs resolves each job-id in specs independently ("Job-id
// errors within a single built-in invocation are
// independent: one bad arg does not abort the rest"), printing a
// diagnostic and setting failed for unresolved ones. No specs means
// every job in the table.
func resolveJobArgs(ctx Context, specs []string) (out []*jobs.Job, failed bool) {
	if len(specs) == 0 {
		return ctx.Table.All(), false
	}
	for _, spec := range specs {
		j, err := ctx.Table.Resolve(spec)
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "jobs: %v\n", err)
			failed = true
			continue
		}
		out = append(out, j)
	}
	return out, failed
}
