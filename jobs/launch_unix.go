// Copyright (c) 2024, The yash-go Authors

//go:build unix

package jobs

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Stage describes one pipeline member to launch: the executable path,
// its argument vector, environment, and the file descriptors it
// inherits.
type Stage struct {
	Path   string
	Args   []string
	Env    []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Launcher starts a pipeline of stages under one new process group
// (syscall.SysProcAttr{Setpgid: true}), generalized from a single
// command to an N-stage pipeline, modeling a job as a group of
// processes sharing one pgid.
type Launcher struct {
	Table *Table
}

// Launch starts the first stage on its own, so that its pid becomes the
// pipeline's pgid, then starts every later stage concurrently
// (errgroup, so a mid-pipeline exec failure doesn't block on the other
// stages' Start calls) with that pgid as its process-group target, so
// the whole pipeline lands in one group.
func (l *Launcher) Launch(ctx context.Context, command string, stages []Stage) (*Job, []*exec.Cmd, error) {
	if len(stages) == 0 {
		return nil, nil, fmt.Errorf("jobs: Launch requires at least one stage")
	}
	cmds := make([]*exec.Cmd, len(stages))
	for i, st := range stages {
		cmd := exec.CommandContext(ctx, st.Path, st.Args[1:]...)
		cmd.Args = st.Args
		cmd.Env = st.Env
		cmd.Dir = st.Dir
		cmd.Stdin = st.Stdin
		cmd.Stdout = st.Stdout
		cmd.Stderr = st.Stderr
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		if i > 0 {
			cmd.SysProcAttr.Pgid = -1 // placeholder, fixed up once stage 0 has a pid
		}
		cmds[i] = cmd
	}

	if err := cmds[0].Start(); err != nil {
		return nil, nil, err
	}
	pgid := cmds[0].Process.Pid

	var g errgroup.Group
	for i := 1; i < len(cmds); i++ {
		cmd := cmds[i]
		cmd.SysProcAttr.Pgid = pgid
		cmd.SysProcAttr.Setpgid = true
		g.Go(cmd.Start)
	}
	if err := g.Wait(); err != nil {
		for _, cmd := range cmds {
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
		}
		return nil, nil, err
	}

	procs := make([]*Process, len(cmds))
	for i, cmd := range cmds {
		procs[i] = &Process{Pid: cmd.Process.Pid, Status: Running}
	}
	job := &Job{Pgid: pgid, Command: command, Processes: procs}
	l.Table.Add(job)
	return job, cmds, nil
}

// detachedPgid is the pgid sign-negation convention used in kill(2)
// calls to target a whole process group.
func detachedPgid(pgid int) int { return -pgid }

// Signal sends sig to every process in the job's group. A disowned job
// whose group leader has since exited still resolves to a valid
// (negative) pgid target as long as the kernel has not yet recycled
// the pid.
func (j *Job) Signal(sig os.Signal) error {
	if j.Pgid == 0 {
		return fmt.Errorf("jobs: job %d is not job-controlled", j.Number)
	}
	return syscall.Kill(detachedPgid(j.Pgid), sig.(syscall.Signal))
}
