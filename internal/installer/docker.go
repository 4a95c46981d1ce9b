package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/platform"
	"env-bootstrap/internal/runner"
)

const (
	dockerKeyring = "/etc/apt/keyrings/docker.asc"
	dockerAptList = "/etc/apt/sources.list.d/docker.list"
)

var dockerPackages = []string{"docker-ce", "docker-ce-cli", "containerd.io", "docker-buildx-plugin", "docker-compose-plugin"}

// Docker is the container runtime requirement. On macOS it is never
// installed automatically: the operator installs Docker Desktop, and the
// run continues without it unless policy is strict.
func (in *Installer) Docker() Tool {
	t := Tool{
		Name: "docker",
		Probe: func(ctx context.Context) Probe {
			return in.probe(ctx, runner.Command{Name: "docker", Args: []string{"--version"}}, ParseVersion)
		},
		Install: in.installDocker,
	}
	if in.Platform.IsMacOS() {
		t.Degrade = func(_ context.Context, cause error) error {
			if in.Config.Policy.Strict {
				return cause
			}
			logger.Warn("Docker is not available; continuing without it. Install Docker Desktop before deploying.")
			return nil
		}
	}
	return t
}

func (in *Installer) installDocker(ctx context.Context, _ Probe) error {
	if in.Platform.IsMacOS() {
		logger.Warn("Docker Desktop must be installed manually on macOS: https://docs.docker.com/desktop/install/mac-install/")
		return nil
	}

	var err error
	switch in.Platform.Family {
	case platform.FamilyDebian:
		err = in.installDockerApt(ctx)
	case platform.FamilyRHEL:
		err = in.installDockerRHEL(ctx)
	case platform.FamilyAmazon:
		err = in.installDockerAmazon(ctx)
	default:
		err = fmt.Errorf("no Docker install procedure for %s", in.Platform.Family)
	}
	if err != nil {
		return err
	}

	if _, err := in.Runner.Run(ctx, in.privileged("systemctl", "enable", "--now", "docker")); err != nil {
		return fmt.Errorf("failed to start docker service: %w", err)
	}
	if in.User == "" {
		logger.Warn("Could not determine the invoking user; add yourself to the docker group manually")
		return nil
	}
	if _, err := in.Runner.Run(ctx, in.privileged("usermod", "-aG", "docker", in.User)); err != nil {
		return fmt.Errorf("failed to add %s to the docker group: %w", in.User, err)
	}
	logger.Warn("Added %s to the docker group. Log out and back in (or run `newgrp docker`) for it to take effect.", in.User)
	return nil
}

// installDockerApt registers Docker's apt repository, then installs the engine.
func (in *Installer) installDockerApt(ctx context.Context) error {
	distro := "ubuntu"
	if in.Platform.Distro == "debian" {
		distro = "debian"
	}
	codename := in.Platform.Codename
	if codename == "" {
		return fmt.Errorf("cannot configure Docker repository: VERSION_CODENAME missing from os-release")
	}

	out, err := in.Runner.Run(ctx, runner.Command{Name: "dpkg", Args: []string{"--print-architecture"}})
	if err != nil {
		return fmt.Errorf("failed to read dpkg architecture: %w", err)
	}
	arch := strings.TrimSpace(string(out))

	err = in.withTempDir("docker-", func(dir string) error {
		if _, err := in.Runner.Run(ctx, in.privileged("install", "-m", "0755", "-d", filepath.Dir(dockerKeyring))); err != nil {
			return err
		}
		key := filepath.Join(dir, "docker.asc")
		repo := fmt.Sprintf("%s/linux/%s", in.Config.Sources.Docker, distro)
		if err := in.downloadFile(ctx, repo+"/gpg", key); err != nil {
			return err
		}
		if _, err := in.Runner.Run(ctx, in.privileged("install", "-m", "0644", key, dockerKeyring)); err != nil {
			return err
		}

		list := filepath.Join(dir, "docker.list")
		line := fmt.Sprintf("deb [arch=%s signed-by=%s] %s %s stable\n", arch, dockerKeyring, repo, codename)
		if err := os.WriteFile(list, []byte(line), 0o644); err != nil {
			return err
		}
		_, err := in.Runner.Run(ctx, in.privileged("install", "-m", "0644", list, dockerAptList))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to configure Docker apt repository: %w", err)
	}

	pm := aptManager{in}
	if err := pm.Refresh(ctx); err != nil {
		return err
	}
	return pm.Install(ctx, dockerPackages...)
}

func (in *Installer) installDockerRHEL(ctx context.Context) error {
	pm := yumManager{in}
	if err := pm.Install(ctx, "yum-utils"); err != nil {
		return err
	}
	repo := fmt.Sprintf("%s/linux/%s/docker-ce.repo", in.Config.Sources.Docker, dockerYumRepo(in.Platform.Distro))
	if _, err := in.Runner.Run(ctx, in.privileged("yum-config-manager", "--add-repo", repo)); err != nil {
		return err
	}
	return pm.Install(ctx, dockerPackages...)
}

// dockerYumRepo is the directory Docker publishes the distro's repo file
// under. Rebuilds of RHEL use the CentOS repo.
func dockerYumRepo(distro string) string {
	switch distro {
	case "fedora", "rhel":
		return distro
	default:
		return "centos"
	}
}

// installDockerAmazon uses the distribution's own docker package.
func (in *Installer) installDockerAmazon(ctx context.Context) error {
	return yumManager{in}.Install(ctx, "docker")
}
