package project

import "fmt"

// ConfigurationError reports missing or invalid operator configuration.
type ConfigurationError struct {
	Reason string // e.g. "missing project directory"
	Path   string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Reason, e.Path)
}

// CommandFailedError is returned when one of the project commands exits nonzero.
type CommandFailedError struct {
	Command string
	Status  int
	Err     error
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("project command %q failed (exit status %d): %v", e.Command, e.Status, e.Err)
}

func (e *CommandFailedError) Unwrap() error { return e.Err }

// Reasons used by ConfigurationError.
const (
	ReasonMissingDir        = "missing project directory"
	ReasonEmptyDir          = "empty project directory"
	ReasonMissingConfig     = "missing config file"
	ReasonMissingConstant   = "PROJECT_NAME constant not found"
	ReasonDuplicateConstant = "PROJECT_NAME constant defined more than once"
	ReasonInvalidName       = "invalid project name"
)
