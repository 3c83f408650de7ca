// Copyright (c) 2024, The yash-go Authors

//go:build unix

package jobs

import (
	"strings"

	"golang.org/x/sys/unix"
)

// signalName renders a signal number as its bare name (no "SIG"
// prefix), e.g. signalName(2) == "INT", matching strsignal-derived
// names.
func signalName(n int) string {
	if n == 0 {
		return ""
	}
	name := unix.SignalName(unix.Signal(n))
	if name == "" {
		return "UNKNOWN"
	}
	return strings.TrimPrefix(name, "SIG")
}
