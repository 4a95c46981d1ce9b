// Package bootstrap runs the environment steps in their fixed order and
// stops at the first fatal error.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"env-bootstrap/internal/config"
	"env-bootstrap/internal/credentials"
	"env-bootstrap/internal/installer"
	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/platform"
	"env-bootstrap/internal/project"
	"env-bootstrap/internal/report"
	"env-bootstrap/internal/runner"
)

// Result is what a step reports on success.
type Result struct {
	Outcome string
	Version string
	Detail  string
}

// Step is one unit of the run. A returned error is fatal.
type Step struct {
	Name string
	Run  func(ctx context.Context) (Result, error)
}

// Orchestrator executes Steps sequentially and records them in Report.
type Orchestrator struct {
	Steps  []Step
	Report *report.Report
}

// Run executes every step in order. The first error stops the run and is
// returned wrapped with the step name; later steps never start.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.Report == nil {
		o.Report = report.New()
	}
	for _, s := range o.Steps {
		logger.Debug("Starting step %s", s.Name)
		start := time.Now()
		res, err := s.Run(ctx)
		rec := report.StepResult{
			Name:     s.Name,
			Outcome:  res.Outcome,
			Version:  res.Version,
			Detail:   res.Detail,
			Duration: time.Since(start).Round(time.Millisecond).String(),
		}
		if err != nil {
			rec.Outcome = report.Failed
			rec.Error = err.Error()
			o.Report.Add(rec)
			return fmt.Errorf("step %s: %w", s.Name, err)
		}
		o.Report.Add(rec)
	}
	o.Report.Success = true
	logger.Info("Environment bootstrap completed")
	return nil
}

// Options are the collaborators of a full run.
type Options struct {
	Platform platform.Descriptor
	Config   config.Config
	Env      config.Env
	Runner   runner.Runner

	// Installer defaults to installer.New(Platform, Runner, Config).
	Installer *installer.Installer

	Resolver credentials.Resolver
	Decider  credentials.Decider
}

func (o Options) installer() *installer.Installer {
	if o.Installer != nil {
		return o.Installer
	}
	return installer.New(o.Platform, o.Runner, o.Config)
}

// New builds the standard run: preflight, tools, credentials, project.
func New(o Options) *Orchestrator {
	in := o.installer()
	steps := []Step{PreflightStep(o.Env)}
	steps = append(steps, ToolSteps(in)...)
	steps = append(steps,
		CredentialStep(&credentials.Step{Resolver: o.Resolver, Decider: o.Decider, Runner: o.Runner}),
		ProjectStep(&project.Step{
			Dir:        o.Env.ProjectDir,
			Name:       o.Env.ProjectName,
			ConfigFile: o.Config.Project.ConfigFile,
			Runner:     o.Runner,
		}, o.Platform),
	)

	r := report.New()
	r.Platform = o.Platform.String()
	return &Orchestrator{Steps: steps, Report: r}
}

// PreflightStep validates operator configuration before the host is touched.
func PreflightStep(env config.Env) Step {
	return Step{
		Name: "preflight",
		Run: func(context.Context) (Result, error) {
			if err := project.Validate(env.ProjectDir); err != nil {
				return Result{}, err
			}
			return Result{Outcome: report.Completed, Detail: env.ProjectDir}, nil
		},
	}
}

// ToolSteps are the installer steps in dependency order.
func ToolSteps(in *installer.Installer) []Step {
	steps := []Step{{
		Name: "packages",
		Run: func(ctx context.Context) (Result, error) {
			if err := in.BootstrapPackages(ctx); err != nil {
				return Result{}, err
			}
			return Result{Outcome: report.Completed, Detail: string(in.Platform.PackageManager)}, nil
		},
	}}
	for _, t := range []installer.Tool{in.AWSCLI(), in.Eksctl(), in.Kubectl(), in.Docker()} {
		t := t // per-iteration copy; go.mod targets go 1.21, which predates per-iteration loop variables
		steps = append(steps, toolStep(t.Name, func(ctx context.Context) (installer.Result, error) {
			return installer.Ensure(ctx, t)
		}))
	}
	return append(steps,
		toolStep("node", in.EnsureNode),
		toolStep("cdk", func(ctx context.Context) (installer.Result, error) {
			return installer.Ensure(ctx, in.CDK())
		}),
	)
}

func toolStep(name string, ensure func(context.Context) (installer.Result, error)) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) (Result, error) {
			res, err := ensure(ctx)
			return Result{Outcome: string(res.Outcome), Version: res.Version}, err
		},
	}
}

// CredentialStep never fails; an unresolved identity is recorded as degraded.
func CredentialStep(s *credentials.Step) Step {
	return Step{
		Name: "credentials",
		Run: func(ctx context.Context) (Result, error) {
			if arn := s.Run(ctx); arn != "" {
				return Result{Outcome: string(installer.Satisfied), Detail: arn}, nil
			}
			return Result{Outcome: string(installer.Degraded)}, nil
		},
	}
}

// ProjectStep bootstraps the CDK project.
func ProjectStep(s *project.Step, desc platform.Descriptor) Step {
	return Step{
		Name: "project",
		Run: func(ctx context.Context) (Result, error) {
			if err := s.Run(ctx); err != nil {
				return Result{}, err
			}
			if desc.IsLinux() {
				logger.Reminder("Log out and back in so your docker group membership applies to new shells.")
			}
			return Result{Outcome: report.Completed, Detail: s.Dir}, nil
		},
	}
}
