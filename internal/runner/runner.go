// Package runner is the single seam through which every external command is
// executed. Installer steps never call os/exec directly, so tests can script
// the host with a fake.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"env-bootstrap/internal/logger"
)

// Command describes one external invocation.
type Command struct {
	Name string
	Args []string
	Dir  string   // working directory; empty means the current one
	Env  []string // extra KEY=VALUE pairs appended to the process environment

	// Interactive attaches the operator's terminal instead of capturing output.
	Interactive bool
}

// String renders the command the way it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes commands and resolves executables on PATH.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
	LookPath(name string) (string, error)
}

// CommandError is returned when a command exits nonzero or cannot be started.
type CommandError struct {
	Command string
	Status  int // -1 when the process never produced an exit status
	Output  []byte
	Err     error
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(string(e.Output))
	if out == "" {
		return fmt.Sprintf("%s: exit status %d: %v", e.Command, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: exit status %d: %v\nOutput: %s", e.Command, e.Status, e.Err, out)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitStatus returns the exit status carried by err, or -1 if there is none.
func ExitStatus(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Status
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Exec runs commands on the host with os/exec.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns an Exec wired to the process's standard streams.
func NewExec() *Exec {
	return &Exec{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes cmd and blocks until it exits. Non-interactive commands return
// their combined output.
func (e *Exec) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	logger.Debug("Running command: %s", strings.Join(c.Args, " "))

	var output []byte
	var err error
	if cmd.Interactive {
		c.Stdin, c.Stdout, c.Stderr = e.Stdin, e.Stdout, e.Stderr
		err = c.Run()
	} else {
		output, err = c.CombinedOutput()
	}
	if err != nil {
		status := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			status = exitErr.ExitCode()
		}
		return output, &CommandError{Command: cmd.String(), Status: status, Output: output, Err: err}
	}
	return output, nil
}

// LookPath resolves name against the current PATH.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
