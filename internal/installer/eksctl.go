package installer

import (
	"context"
	"path/filepath"

	"env-bootstrap/internal/runner"
)

// Eksctl is the cluster CLI requirement. A present eksctl is never touched.
func (in *Installer) Eksctl() Tool {
	return Tool{
		Name: "eksctl",
		Probe: func(ctx context.Context) Probe {
			return in.probe(ctx, runner.Command{Name: "eksctl", Args: []string{"version"}}, ParseVersion)
		},
		Install: func(ctx context.Context, _ Probe) error {
			// e.g. eksctl_Linux_amd64.tar.gz
			archive := in.artifactName(in.Config.Sources.EksctlArchive, in.Platform.Arch)
			return in.withTempDir("eksctl-", func(dir string) error {
				dst := filepath.Join(dir, archive)
				if err := in.downloadFile(ctx, in.Config.Sources.Eksctl+"/"+archive, dst); err != nil {
					return err
				}
				// Unpack into a subdirectory so the archive itself is not scanned
				bin, err := extractBinary(dst, filepath.Join(dir, "out"), "eksctl")
				if err != nil {
					return err
				}
				_, err = in.installBinary(ctx, bin, "eksctl")
				return err
			})
		},
	}
}
