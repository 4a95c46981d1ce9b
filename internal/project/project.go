// Package project bootstraps the CDK application the environment is being
// prepared for: install its dependencies, bootstrap the target account,
// list its stacks and optionally rename it.
package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/runner"
)

// Validate checks that dir is an existing, non-empty directory.
func Validate(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return &ConfigurationError{Reason: ReasonMissingDir}
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &ConfigurationError{Reason: ReasonMissingDir, Path: dir}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &ConfigurationError{Reason: ReasonMissingDir, Path: dir}
	}
	if len(entries) == 0 {
		return &ConfigurationError{Reason: ReasonEmptyDir, Path: dir}
	}
	return nil
}

// Step is the project bootstrap.
type Step struct {
	Dir        string
	Name       string // optional new PROJECT_NAME
	ConfigFile string // relative to Dir unless absolute
	Runner     runner.Runner
}

// ConfigPath is the file holding the PROJECT_NAME constant.
func (s *Step) ConfigPath() string {
	if filepath.IsAbs(s.ConfigFile) {
		return s.ConfigFile
	}
	return filepath.Join(s.Dir, s.ConfigFile)
}

func (s *Step) Run(ctx context.Context) error {
	if err := Validate(s.Dir); err != nil {
		return err
	}
	logger.Info("Bootstrapping CDK project in %s", s.Dir)

	if _, err := s.run(ctx, "npm", "install"); err != nil {
		return err
	}
	if _, err := s.run(ctx, "cdk", "bootstrap"); err != nil {
		return err
	}
	if err := s.list(ctx); err != nil {
		return err
	}

	if s.Name == "" {
		logger.Debug("PROJECT_NAME not set; %s left unchanged", s.ConfigPath())
		return nil
	}
	if err := PatchProjectName(s.ConfigPath(), s.Name); err != nil {
		return err
	}
	return s.list(ctx)
}

func (s *Step) list(ctx context.Context) error {
	out, err := s.run(ctx, "cdk", "list")
	if err != nil {
		return err
	}
	stacks := strings.Fields(strings.TrimSpace(string(out)))
	if len(stacks) == 0 {
		logger.Warn("cdk list returned no stacks")
		return nil
	}
	logger.Info("Stacks: %s", strings.Join(stacks, ", "))
	return nil
}

func (s *Step) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := runner.Command{Name: name, Args: args, Dir: s.Dir}
	logger.Info("Running %s", cmd)
	out, err := s.Runner.Run(ctx, cmd)
	if err != nil {
		return nil, &CommandFailedError{Command: cmd.String(), Status: runner.ExitStatus(err), Err: err}
	}
	return out, nil
}
