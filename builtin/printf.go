// Copyright (c) 2024, The yash-go Authors

package builtin

import (
	"fmt"

	"github.com/vigoux/yash/format"
)

// Printf implements the "printf FORMAT [ARG...]" builtin: compile the
// format once, run it repeatedly against argv[1:] until the argument
// stream is exhausted (format.RunAll), and write the accumulated
// bytes in a single flush.
func Printf(ctx Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(ctx.Stderr, "printf: missing operand")
		return ExitUsage
	}
	prog, err := format.Compile(argv[0])
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "printf: %v\n", err)
		return ExitFailure
	}
	out, badArg, _ := format.RunAll(prog, argv[1:])
	if _, err := ctx.Stdout.Write(out); err != nil {
		fmt.Fprintf(ctx.Stderr, "printf: %v\n", err)
		return ExitFailure
	}
	if badArg {
		fmt.Fprintln(ctx.Stderr, "printf: invalid number")
		return ExitFailure
	}
	return ExitSuccess
}
