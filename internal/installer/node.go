package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/runner"
)

// nvm is a shell function, so every call sources nvm.sh in a fresh bash.
const (
	nvmLoad        = `. "$NVM_DIR/nvm.sh"`
	nvmProbeScript = nvmLoad + ` && nvm --version && nvm version "lts/*"`
	nvmLTSScript   = nvmLoad + ` && nvm install --lts && nvm alias default "lts/*"`
	nvmBinScript   = nvmLoad + ` >/dev/null && nvm use --lts >/dev/null && dirname "$(nvm which current)"`
)

// NVMDir is the version manager's home: $NVM_DIR or ~/.nvm.
func (in *Installer) NVMDir() string {
	if dir := os.Getenv("NVM_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(in.Home, ".nvm")
}

func (in *Installer) nvm(script string) runner.Command {
	return runner.Command{Name: "bash", Args: []string{"-c", script}, Env: []string{"NVM_DIR=" + in.NVMDir()}}
}

// Node is the nvm + LTS runtime requirement. The probe succeeds only when nvm
// loads and an LTS release is installed under it.
func (in *Installer) Node() Tool {
	return Tool{
		Name:  "node",
		Probe: in.probeNode,
		Install: func(ctx context.Context, _ Probe) error {
			if _, err := os.Stat(filepath.Join(in.NVMDir(), "nvm.sh")); err != nil {
				if err := in.installNVM(ctx); err != nil {
					return err
				}
			}
			logger.Info("Installing the Node.js LTS release with nvm...")
			_, err := in.Runner.Run(ctx, in.nvm(nvmLTSScript))
			return err
		},
		Degrade: func(ctx context.Context, cause error) error {
			if in.Config.Policy.Strict {
				return cause
			}
			out, err := in.Runner.Run(ctx, runner.Command{Name: "node", Args: []string{"--version"}})
			if err != nil {
				return cause
			}
			logger.Warn("nvm could not be verified (%v); continuing with system Node.js %s", cause, strings.TrimSpace(string(out)))
			return nil
		},
	}
}

func (in *Installer) probeNode(ctx context.Context) Probe {
	if _, err := os.Stat(filepath.Join(in.NVMDir(), "nvm.sh")); err != nil {
		return Probe{Err: err}
	}
	out, err := in.Runner.Run(ctx, in.nvm(nvmProbeScript))
	if err != nil {
		return Probe{Err: err}
	}
	lines := strings.Fields(strings.TrimSpace(string(out)))
	if len(lines) < 2 || strings.Contains(lines[len(lines)-1], "N/A") {
		return Probe{Err: fmt.Errorf("no LTS Node.js release installed under %s", in.NVMDir())}
	}
	return Probe{Found: true, Version: strings.TrimPrefix(lines[len(lines)-1], "v")}
}

func (in *Installer) installNVM(ctx context.Context) error {
	url := fmt.Sprintf("%s/%s/install.sh", in.Config.Sources.NVM, in.Config.Tools.NVMVersion)
	return in.withTempDir("nvm-", func(dir string) error {
		script := filepath.Join(dir, "install.sh")
		if err := in.downloadFile(ctx, url, script); err != nil {
			return err
		}
		if err := os.MkdirAll(in.NVMDir(), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", in.NVMDir(), err)
		}
		_, err := in.Runner.Run(ctx, runner.Command{
			Name: "bash",
			Args: []string{script},
			Env:  []string{"NVM_DIR=" + in.NVMDir(), "PROFILE=/dev/null"},
		})
		return err
	})
}

// EnsureNode satisfies the node requirement and then puts the LTS bin
// directory at the front of this process's PATH, so later steps find the
// same node and npm the operator will get in a new shell.
func (in *Installer) EnsureNode(ctx context.Context) (Result, error) {
	res, err := Ensure(ctx, in.Node())
	if err != nil || res.Outcome == Degraded {
		return res, err
	}

	out, err := in.Runner.Run(ctx, in.nvm(nvmBinScript))
	if err != nil {
		return res, failed("node", fmt.Errorf("failed to activate Node.js LTS: %w", err))
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	binDir := strings.TrimSpace(lines[len(lines)-1])
	if binDir == "" || binDir == "." {
		return res, failed("node", fmt.Errorf("nvm did not report a node binary directory"))
	}
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH")); err != nil {
		return res, failed("node", err)
	}
	logger.Info("Using Node.js %s from %s", res.Version, binDir)
	return res, nil
}
