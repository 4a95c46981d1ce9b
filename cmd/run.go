package cmd

import (
	"github.com/spf13/cobra"

	"env-bootstrap/internal/bootstrap"
)

// runCmd performs the whole bootstrap: tools, credentials, then the project.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Install every tool, check credentials and bootstrap the CDK project",
	RunE:  runAll,
}

func runAll(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := prepare(ctx)
	if err != nil {
		return err
	}
	creds := s.credentialStep()
	o := bootstrap.New(bootstrap.Options{
		Platform:  s.platform,
		Config:    s.cfg,
		Env:       s.env,
		Runner:    s.runner,
		Installer: s.installer(),
		Resolver:  creds.Resolver,
		Decider:   creds.Decider,
	})
	return s.execute(ctx, o)
}
