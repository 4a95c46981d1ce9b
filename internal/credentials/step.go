package credentials

import (
	"context"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/runner"
)

// Step checks for an AWS identity and offers to configure one.
type Step struct {
	Resolver Resolver
	Decider  Decider
	Runner   runner.Runner
}

// Run returns the resolved identity, or "" when the operator continued
// without one. It never fails the run.
func (s *Step) Run(ctx context.Context) string {
	arn, err := s.Resolver.Resolve(ctx)
	if err == nil {
		logger.Info("Resolved AWS identity: %s", arn)
		return arn
	}
	logger.Warn("No AWS identity could be resolved: %v", err)

	choice, err := s.Decider.Choose(ctx)
	if err != nil {
		logger.Warn("No choice was read (%v); continuing without credentials", err)
		choice = Continue
	}
	logger.Debug("Credential remediation choice: %s", choice)

	if choice == Configure {
		cmd := runner.Command{Name: "aws", Args: []string{"configure"}, Interactive: true}
		if _, err := s.Runner.Run(ctx, cmd); err != nil {
			logger.Warn("aws configure did not complete: %v", err)
		}
		if arn, err := s.Resolver.Resolve(ctx); err == nil {
			logger.Info("Resolved AWS identity: %s", arn)
			return arn
		} else {
			logger.Warn("AWS identity is still unresolved: %v", err)
		}
	}

	logger.Reminder("Configure AWS credentials with 'aws configure' before running cdk deploy.")
	return ""
}
