package installer

import (
	"context"
	"errors"
	"fmt"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/runner"
)

// Outcome is how a tool requirement was satisfied.
type Outcome string

const (
	Satisfied Outcome = "satisfied" // present and acceptable before the run touched it
	Installed Outcome = "installed" // installed or upgraded, then verified
	Degraded  Outcome = "degraded"  // unsatisfied, but a fallback let the run continue
)

// Probe is the structured result of a presence/version check.
type Probe struct {
	Found   bool
	Version string
	Err     error // why the probe failed, when Found is false
}

// Result is what Ensure reports for one tool.
type Result struct {
	Outcome Outcome
	Version string
}

// Tool is one tool requirement: how to check it, how to install it and,
// optionally, how to survive when it cannot be satisfied.
type Tool struct {
	Name string

	// Probe checks presence and extracts the version.
	Probe func(ctx context.Context) Probe

	// Accept decides whether a found version is good enough. Nil accepts any.
	Accept func(version string) bool

	// Install performs the install procedure. current is the probe taken
	// before installing, so steps can switch to an upgrade mode.
	Install func(ctx context.Context, current Probe) error

	// Degrade is consulted when the tool could not be satisfied. Returning
	// nil lets the run continue; returning an error keeps it fatal.
	Degrade func(ctx context.Context, cause error) error
}

func (t Tool) accepts(p Probe) bool {
	if !p.Found {
		return false
	}
	if t.Accept == nil {
		return true
	}
	return t.Accept(p.Version)
}

// InstallationFailedError is the single fatal error type for installer steps.
type InstallationFailedError struct {
	Tool   string
	Status int // exit status of the failing command, -1 if none
	Err    error
}

func (e *InstallationFailedError) Error() string {
	if e.Status >= 0 {
		return fmt.Sprintf("installation of %s failed (exit status %d): %v", e.Tool, e.Status, e.Err)
	}
	return fmt.Sprintf("installation of %s failed: %v", e.Tool, e.Err)
}

func (e *InstallationFailedError) Unwrap() error { return e.Err }

func failed(tool string, err error) *InstallationFailedError {
	var already *InstallationFailedError
	if errors.As(err, &already) && already.Tool == tool {
		return already
	}
	return &InstallationFailedError{Tool: tool, Status: runner.ExitStatus(err), Err: err}
}

// Ensure drives one tool to a satisfied state: probe, install if needed,
// probe again. There are no retries; the first failure is returned.
func Ensure(ctx context.Context, t Tool) (Result, error) {
	before := t.Probe(ctx)
	if t.accepts(before) {
		logger.Info("%s %s is already installed. Skipping.", t.Name, displayVersion(before.Version))
		return Result{Outcome: Satisfied, Version: before.Version}, nil
	}

	if before.Found {
		logger.Info("%s %s does not meet the requirement. Reinstalling...", t.Name, displayVersion(before.Version))
	} else {
		logger.Info("Installing %s...", t.Name)
		logger.Debug("%s probe failed: %v", t.Name, before.Err)
	}

	if err := t.Install(ctx, before); err != nil {
		return degrade(ctx, t, failed(t.Name, err))
	}

	after := t.Probe(ctx)
	if !t.accepts(after) {
		cause := after.Err
		if cause == nil {
			cause = fmt.Errorf("found version %s after install", displayVersion(after.Version))
		}
		return degrade(ctx, t, failed(t.Name, fmt.Errorf("post-install verification failed: %w", cause)))
	}

	logger.Info("Installed %s %s", t.Name, displayVersion(after.Version))
	return Result{Outcome: Installed, Version: after.Version}, nil
}

func degrade(ctx context.Context, t Tool, cause *InstallationFailedError) (Result, error) {
	if t.Degrade == nil {
		return Result{}, cause
	}
	if err := t.Degrade(ctx, cause); err != nil {
		return Result{}, failed(t.Name, err)
	}
	return Result{Outcome: Degraded}, nil
}

func displayVersion(v string) string {
	if v == "" {
		return "(unknown version)"
	}
	return v
}
