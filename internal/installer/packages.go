package installer

import (
	"context"
	"fmt"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/platform"
	"env-bootstrap/internal/runner"
)

// PackageManager is one system package manager family.
type PackageManager interface {
	Name() platform.PackageManager
	Refresh(ctx context.Context) error
	Install(ctx context.Context, pkgs ...string) error
}

type aptManager struct{ in *Installer }

func (m aptManager) Name() platform.PackageManager { return platform.Apt }

func (m aptManager) Refresh(ctx context.Context) error {
	_, err := m.in.Runner.Run(ctx, m.in.privileged("apt-get", "update", "-y"))
	return err
}

func (m aptManager) Install(ctx context.Context, pkgs ...string) error {
	_, err := m.in.Runner.Run(ctx, m.in.privileged("apt-get", append([]string{"install", "-y"}, pkgs...)...))
	return err
}

type yumManager struct{ in *Installer }

func (m yumManager) Name() platform.PackageManager { return platform.Yum }

func (m yumManager) Refresh(ctx context.Context) error {
	_, err := m.in.Runner.Run(ctx, m.in.privileged("yum", "makecache", "-y"))
	return err
}

func (m yumManager) Install(ctx context.Context, pkgs ...string) error {
	_, err := m.in.Runner.Run(ctx, m.in.privileged("yum", append([]string{"install", "-y"}, pkgs...)...))
	return err
}

// brewManager never uses sudo; Homebrew refuses to run as root.
type brewManager struct{ in *Installer }

func (m brewManager) Name() platform.PackageManager { return platform.Brew }

func (m brewManager) Refresh(ctx context.Context) error {
	if _, err := m.in.Runner.LookPath("brew"); err != nil {
		return fmt.Errorf("Homebrew is required on macOS (https://brew.sh): %w", err)
	}
	_, err := m.in.Runner.Run(ctx, runner.Command{Name: "brew", Args: []string{"update"}})
	return err
}

func (m brewManager) Install(ctx context.Context, pkgs ...string) error {
	_, err := m.in.Runner.Run(ctx, runner.Command{Name: "brew", Args: append([]string{"install"}, pkgs...)})
	return err
}

// PackageManager selects the implementation for the descriptor once.
func (in *Installer) PackageManager() (PackageManager, error) {
	switch in.Platform.PackageManager {
	case platform.Apt:
		return aptManager{in}, nil
	case platform.Yum:
		return yumManager{in}, nil
	case platform.Brew:
		return brewManager{in}, nil
	default:
		return nil, fmt.Errorf("no package manager for platform %s", in.Platform)
	}
}

// BootstrapPackages refreshes the package index and installs the
// prerequisite utilities every later download depends on.
func (in *Installer) BootstrapPackages(ctx context.Context) error {
	pm, err := in.PackageManager()
	if err != nil {
		return failed("packages", err)
	}

	logger.Info("Updating %s package index...", pm.Name())
	if err := pm.Refresh(ctx); err != nil {
		return failed("packages", fmt.Errorf("failed to refresh %s package index: %w", pm.Name(), err))
	}

	pkgs := in.Config.Tools.Prerequisites[string(pm.Name())]
	if len(pkgs) == 0 {
		logger.Info("No prerequisite packages configured for %s", pm.Name())
		return nil
	}
	logger.Info("Installing prerequisite packages: %v", pkgs)
	if err := pm.Install(ctx, pkgs...); err != nil {
		return failed("packages", fmt.Errorf("failed to install prerequisites: %w", err))
	}
	return nil
}
