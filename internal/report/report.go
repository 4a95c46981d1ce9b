// Package report records what a bootstrap run did, step by step, and writes
// it as JSON for CI logs or later inspection. Runs never read it back: every
// run re-probes the host.
package report

import (
	"encoding/json" // For JSON encoding of the report file
	"os"
	"time"

	"env-bootstrap/internal/logger"
)

// Step outcomes beyond the installer's satisfied/installed/degraded.
const (
	Completed = "completed" // a non-installer step finished
	Failed    = "failed"    // the step returned a fatal error
)

// StepResult is the recorded outcome of one orchestrator step.
type StepResult struct {
	Name     string `json:"name"`              // Step name, e.g. "kubectl"
	Outcome  string `json:"outcome"`           // satisfied, installed, degraded, completed or failed
	Version  string `json:"version,omitempty"` // Tool version after the step, when known
	Detail   string `json:"detail,omitempty"`  // Free-form detail such as the resolved identity
	Error    string `json:"error,omitempty"`   // Error text for a failed step
	Duration string `json:"duration"`          // Wall time spent in the step
}

// Report holds the whole run.
type Report struct {
	StartedAt time.Time    `json:"started_at"`
	Platform  string       `json:"platform,omitempty"`
	Steps     []StepResult `json:"steps"`
	Success   bool         `json:"success"`
}

// New starts an empty report stamped with the current time.
func New() *Report {
	return &Report{StartedAt: time.Now(), Steps: []StepResult{}}
}

// Add appends a step result.
func (r *Report) Add(s StepResult) {
	r.Steps = append(r.Steps, s)
}

// Last returns the most recent step result, if any.
func (r *Report) Last() (StepResult, bool) {
	if len(r.Steps) == 0 {
		return StepResult{}, false
	}
	return r.Steps[len(r.Steps)-1], true
}

// Save writes the report to path as indented JSON.
// Errors during marshalling or writing are logged but not propagated.
func Save(path string, r *Report) {
	file, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal run report: %v", err)
		return
	}

	logger.Debug("Writing run report to %s:\n%s", path, string(file))

	if err := os.WriteFile(path, append(file, '\n'), 0o644); err != nil {
		logger.Error("Failed to write run report %s: %v", path, err)
		return
	}
	logger.Info("Run report written to %s", path)
}
