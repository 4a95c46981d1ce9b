package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/mod/semver"

	"env-bootstrap/internal/platform"
	"env-bootstrap/internal/runner"
)

// awsArch maps normalised architectures to the names in AWS CLI bundle URLs.
var awsArch = map[string]string{
	platform.AMD64: "x86_64",
	platform.ARM64: "aarch64",
}

// AWSCLI is the cloud CLI requirement. Any installed v2 is accepted; an
// older major version is replaced in place with --update.
func (in *Installer) AWSCLI() Tool {
	return Tool{
		Name: "aws",
		Probe: func(ctx context.Context) Probe {
			return in.probe(ctx, runner.Command{Name: "aws", Args: []string{"--version"}}, parseAWSVersion)
		},
		Accept:  isAWSCLIv2,
		Install: in.installAWSCLI,
	}
}

func isAWSCLIv2(version string) bool {
	return semver.Major(canonical(version)) == "v2"
}

func (in *Installer) installAWSCLI(ctx context.Context, current Probe) error {
	return in.withTempDir("awscli-", func(dir string) error {
		if in.Platform.IsMacOS() {
			pkg := filepath.Join(dir, "AWSCLIV2.pkg")
			if err := in.downloadFile(ctx, in.Config.Sources.AWSCLI+"/AWSCLIV2.pkg", pkg); err != nil {
				return err
			}
			_, err := in.Runner.Run(ctx, in.privileged("installer", "-pkg", pkg, "-target", "/"))
			return err
		}

		arch, ok := awsArch[in.Platform.Arch]
		if !ok {
			return fmt.Errorf("no AWS CLI bundle for architecture %s", in.Platform.Arch)
		}
		archive := in.artifactName(in.Config.Sources.AWSCLIArchive, arch)
		bundle := filepath.Join(dir, archive)
		url := in.Config.Sources.AWSCLI + "/" + archive
		if err := in.downloadFile(ctx, url, bundle); err != nil {
			return err
		}
		if _, err := ExtractArchive(bundle, dir); err != nil {
			return fmt.Errorf("failed to extract AWS CLI bundle: %w", err)
		}

		args := []string{filepath.Join(dir, "aws", "install"), "--bin-dir", in.Config.Install.BinDir}
		// the bundle installer refuses to overwrite an existing install without --update
		if current.Found {
			args = append(args, "--update")
		}
		_, err := in.Runner.Run(ctx, in.privileged(args[0], args[1:]...))
		return err
	})
}
