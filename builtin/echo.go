// Copyright (c) 2024, The yash-go Authors

package builtin

import "github.com/vigoux/yash/format"

// Echo implements the "echo [-neE]... [STRING...]" builtin.
// Recognized flags depend on ctx.EchoStyle; an argument
// that doesn't match the style's recognized flag set is left in the
// argument stream and printed literally, per format.Echo's flagLoop.
func Echo(ctx Context, argv []string) int {
	out, code := format.Echo(ctx.EchoStyle, argv)
	if _, err := ctx.Stdout.Write(out); err != nil {
		return ExitFailure
	}
	return code
}
