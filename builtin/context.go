// Copyright (c) 2024, The yash-go Authors

// Package builtin implements the argv-in/exit-code-out built-in
// surface: printf, echo, jobs, fg, bg, wait, disown. Each builtin
// depends only on the narrow Context below (job table,
// formatter style, variable reader, stdio) rather than a full
// dispatcher/runner. Each builtin is an exported func(Context, argv)
// int, so the core doesn't need a full interpreter to exercise them.
package builtin

import (
	"io"

	"github.com/vigoux/yash/format"
	"github.com/vigoux/yash/jobs"
	"github.com/vigoux/yash/vars"
)

// Context is the narrow surface every builtin in this package needs.
type Context struct {
	Table  *jobs.Table
	Ctl    *jobs.Controller // nil if the shell has no job control (e.g. non-interactive)
	Vars   vars.Reader
	Stdout io.Writer
	Stderr io.Writer

	// EchoStyle selects the echo builtin's flavor, read once from
	// $ECHO_STYLE by the caller.
	EchoStyle format.Style

	// POSIX restricts the jobs/fg flag surfaces under POSIXLY_CORRECT.
	POSIX bool
}

// exit codes shared across builtins.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitUsage        = 2
	ExitNotFound     = 127
	exitSignalOffset = 128
)
