// Copyright (c) 2024, The yash-go Authors

package builtin

import "fmt"

// Disown implements "disown [-a] [job...]": detaches jobs from the
// table without signaling them. With no
// arguments, disowns the current job; with -a, disowns every job.
func Disown(ctx Context, argv []string) int {
	if ctx.Ctl == nil {
		fmt.Fprintln(ctx.Stderr, "disown: no job control")
		return ExitFailure
	}

	all := false
	i := 0
	if i < len(argv) && argv[i] == "-a" {
		all = true
		i++
	}

	if all {
		for _, j := range ctx.Table.All() {
			ctx.Ctl.Disown(j)
		}
		return ExitSuccess
	}

	specs := argv[i:]
	if len(specs) == 0 {
		specs = []string{""}
	}
	failed := false
	for _, spec := range specs {
		j, err := ctx.Table.Resolve(spec)
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "disown: %v\n", err)
			failed = true
			continue
		}
		ctx.Ctl.Disown(j)
	}
	if failed {
		return ExitFailure
	}
	return ExitSuccess
}
