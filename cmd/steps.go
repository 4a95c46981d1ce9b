package cmd

import (
	"github.com/spf13/cobra"

	"env-bootstrap/internal/bootstrap"
	"env-bootstrap/internal/logger"
)

// detectCmd prints the platform descriptor and exits.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the detected platform",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := prepare(cmd.Context())
		if err != nil {
			return err
		}
		d := s.platform
		logger.Info("family=%s package_manager=%s arch=%s kernel=%s", d.Family, d.PackageManager, d.Arch, d.Kernel)
		if d.Distro != "" {
			logger.Info("distro=%s codename=%s", d.Distro, d.Codename)
		}
		return nil
	},
}

// toolsCmd runs only the installer steps.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Install or verify the required tools only",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := prepare(cmd.Context())
		if err != nil {
			return err
		}
		return s.execute(cmd.Context(), &bootstrap.Orchestrator{Steps: bootstrap.ToolSteps(s.installer())})
	},
}

// credentialsCmd checks the AWS identity and offers to configure one.
var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Check AWS credentials and optionally run aws configure",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := prepare(cmd.Context())
		if err != nil {
			return err
		}
		return s.execute(cmd.Context(), &bootstrap.Orchestrator{
			Steps: []bootstrap.Step{bootstrap.CredentialStep(s.credentialStep())},
		})
	},
}

// projectCmd bootstraps the CDK project, assuming the tools are present.
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Bootstrap the CDK project in $PROJECT_DIR",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := prepare(cmd.Context())
		if err != nil {
			return err
		}
		return s.execute(cmd.Context(), &bootstrap.Orchestrator{
			Steps: []bootstrap.Step{
				bootstrap.PreflightStep(s.env),
				bootstrap.ProjectStep(s.projectStep(), s.platform),
			},
		})
	},
}
