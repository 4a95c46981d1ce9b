package installer

import (
	"context"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/runner"
)

// CDK is the deploy-tool requirement. Unlike the other tools it is pinned:
// any version other than the configured one forces a reinstall.
func (in *Installer) CDK() Tool {
	pin := in.Config.Tools.CDKVersion
	return Tool{
		Name: "cdk",
		Probe: func(ctx context.Context) Probe {
			return in.probe(ctx, runner.Command{Name: "cdk", Args: []string{"--version"}}, ParseVersion)
		},
		Accept: func(version string) bool { return SameVersion(version, pin) },
		Install: func(ctx context.Context, current Probe) error {
			args := []string{"install", "-g"}
			if current.Found {
				logger.Info("Replacing aws-cdk %s with pinned %s", displayVersion(current.Version), pin)
				args = append(args, "--force")
			}
			args = append(args, "aws-cdk@"+pin)
			_, err := in.Runner.Run(ctx, runner.Command{Name: "npm", Args: args})
			return err
		},
	}
}
