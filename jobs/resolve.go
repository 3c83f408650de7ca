// Copyright (c) 2024, The yash-go Authors

package jobs

import (
	"strconv"
	"strings"

	"github.com/vigoux/yash/sherr"
)

// Resolve maps a job-id string to exactly one job, implementing the
// usual %-syntax forms:
//
//	""  or "%"  or "+"   -> the current job
//	"-"                  -> the previous job
//	"%N" or "N"          -> job number N
//	"%name" (prefix)     -> the job whose command starts with name
//	"%?substring"        -> the job whose command contains substring
//
// Exactly one candidate must match; zero is sherr.NotFound and more
// than one is sherr.Ambiguous.
func (t *Table) Resolve(spec string) (*Job, error) {
	id := strings.TrimPrefix(spec, "%")

	switch id {
	case "", "+":
		if n := t.Current(); n != 0 {
			j, _ := t.Get(n)
			return j, nil
		}
		return nil, &sherr.NotFound{JobID: spec}
	case "-":
		if n := t.Previous(); n != 0 {
			j, _ := t.Get(n)
			return j, nil
		}
		return nil, &sherr.NotFound{JobID: spec}
	}

	if n, err := strconv.Atoi(id); err == nil {
		if j, ok := t.Get(n); ok {
			return j, nil
		}
		return nil, &sherr.NotFound{JobID: spec}
	}

	var predicate func(cmd string) bool
	if strings.HasPrefix(id, "?") {
		needle := id[1:]
		predicate = func(cmd string) bool { return strings.Contains(cmd, needle) }
	} else {
		predicate = func(cmd string) bool { return strings.HasPrefix(cmd, id) }
	}

	var matches []*Job
	for _, j := range t.All() {
		if predicate(j.Command) {
			matches = append(matches, j)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &sherr.NotFound{JobID: spec}
	case 1:
		return matches[0], nil
	default:
		return nil, &sherr.Ambiguous{JobID: spec}
	}
}

// ResolvePid resolves a bare process id to its owning job and process,
// the form "wait PID" (rather than "wait %job") accepts.
func (t *Table) ResolvePid(pid int) (*Job, *Process, bool) {
	for _, j := range t.All() {
		for _, p := range j.Processes {
			if p.Pid == pid {
				return j, p, true
			}
		}
	}
	return nil, nil, false
}
