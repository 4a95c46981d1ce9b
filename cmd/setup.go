package cmd

import (
	"context"

	"env-bootstrap/internal/bootstrap"
	"env-bootstrap/internal/config"
	"env-bootstrap/internal/credentials"
	"env-bootstrap/internal/installer"
	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/platform"
	"env-bootstrap/internal/project"
	"env-bootstrap/internal/report"
	"env-bootstrap/internal/runner"
)

// settings is everything a subcommand needs before it touches the host.
type settings struct {
	cfg      config.Config
	env      config.Env
	platform platform.Descriptor
	runner   runner.Runner
}

// loadSettings reads the configuration and the environment. It does not
// run any command.
func loadSettings() (config.Config, config.Env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, config.Env{}, err
	}
	if strict {
		cfg.Policy.Strict = true
	}
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return config.Config{}, config.Env{}, err
	}
	return cfg, env, nil
}

func prepare(ctx context.Context) (*settings, error) {
	cfg, env, err := loadSettings()
	if err != nil {
		return nil, err
	}
	r := runner.NewExec()
	desc, err := platform.DetectHost(ctx, r)
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, env: env, platform: desc, runner: r}, nil
}

func (s *settings) installer() *installer.Installer {
	return installer.New(s.platform, s.runner, s.cfg)
}

func (s *settings) credentialStep() *credentials.Step {
	var d credentials.Decider = credentials.NewPromptDecider()
	if nonInteractive {
		d = &credentials.ScriptedDecider{Choice: credentials.Continue}
	}
	return &credentials.Step{Resolver: credentials.STSResolver{}, Decider: d, Runner: s.runner}
}

func (s *settings) projectStep() *project.Step {
	return &project.Step{
		Dir:        s.env.ProjectDir,
		Name:       s.env.ProjectName,
		ConfigFile: s.cfg.Project.ConfigFile,
		Runner:     s.runner,
	}
}

// execute runs o and writes the report when --report is set, whatever the outcome.
func (s *settings) execute(ctx context.Context, o *bootstrap.Orchestrator) error {
	if o.Report == nil {
		o.Report = report.New()
		o.Report.Platform = s.platform.String()
	}
	err := o.Run(ctx)
	if reportPath != "" {
		report.Save(reportPath, o.Report)
	}
	if last, ok := o.Report.Last(); ok && last.Outcome == report.Failed {
		logger.Debug("Run stopped at step %s after %d step(s) (%s)", last.Name, len(o.Report.Steps), last.Duration)
	}
	return err
}
