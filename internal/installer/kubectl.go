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

// Kubectl is the cluster client requirement, installed at the latest stable release.
func (in *Installer) Kubectl() Tool {
	return Tool{
		Name: "kubectl",
		Probe: func(ctx context.Context) Probe {
			return in.probe(ctx, runner.Command{Name: "kubectl", Args: []string{"version", "--client"}}, ParseVersion)
		},
		Install: func(ctx context.Context, _ Probe) error {
			base := in.Config.Sources.Kubectl
			// stable.txt holds a single tag such as v1.30.2
			version, err := in.fetchString(ctx, base+"/stable.txt")
			if err != nil {
				return fmt.Errorf("failed to resolve latest kubectl release: %w", err)
			}
			if !strings.HasPrefix(version, "v") || ParseVersion(version) == "" {
				return fmt.Errorf("unexpected kubectl stable version %q", version)
			}
			logger.Info("Latest stable kubectl is %s", version)

			// kubectl is published as a bare binary, not an archive
			url := fmt.Sprintf("%s/%s/bin/%s/%s/kubectl", base, version, in.Platform.GOOS(), in.Platform.Arch)
			return in.withTempDir("kubectl-", func(dir string) error {
				bin := filepath.Join(dir, "kubectl")
				if err := in.downloadFile(ctx, url, bin); err != nil {
					return err
				}
				// Mark the downloaded file executable before placing it
				if err := os.Chmod(bin, 0o755); err != nil {
					return fmt.Errorf("failed to mark kubectl executable: %w", err)
				}
				_, err := in.installBinary(ctx, bin, "kubectl")
				return err
			})
		},
	}
}
