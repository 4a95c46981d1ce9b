package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"env-bootstrap/internal/platform"
	"env-bootstrap/internal/runner"
	"env-bootstrap/internal/testutil"
)

func TestEksctlInstallsIntoBinDir(t *testing.T) {
	captureLog(t)
	srv := newArtifactServer(t, map[string][]byte{
		"/eksctl/eksctl_Linux_amd64.tar.gz": tarGz(t, archiveEntry{name: "eksctl", body: "eksctl-binary", mode: 0o755}),
	})
	r := testutil.NewFakeRunner().On("eksctl version", testutil.Fail(127), testutil.OK("0.190.0\n"))
	in := newTestInstaller(t, ubuntu(), r, srv)

	res, err := Ensure(context.Background(), in.Eksctl())
	require.NoError(t, err)
	assert.Equal(t, Installed, res.Outcome)
	assert.Equal(t, "0.190.0", res.Version)

	data, err := os.ReadFile(filepath.Join(in.Config.Install.BinDir, "eksctl"))
	require.NoError(t, err)
	assert.Equal(t, "eksctl-binary", string(data))
	assertTempEmpty(t, in)
}

func TestEksctlSecondRunIsNoop(t *testing.T) {
	captureLog(t)
	path := "/eksctl/eksctl_Linux_amd64.tar.gz"
	srv := newArtifactServer(t, map[string][]byte{
		path: tarGz(t, archiveEntry{name: "eksctl", body: "eksctl-binary", mode: 0o755}),
	})
	r := testutil.NewFakeRunner().On("eksctl version", testutil.Fail(127), testutil.OK("0.190.0\n"))
	in := newTestInstaller(t, ubuntu(), r, srv)

	_, err := Ensure(context.Background(), in.Eksctl())
	require.NoError(t, err)
	second, err := Ensure(context.Background(), in.Eksctl())
	require.NoError(t, err)

	assert.Equal(t, Satisfied, second.Outcome)
	assert.Equal(t, 1, srv.Hits(path), "artifact downloaded once")
}

func TestEksctlFromRepackagedArchive(t *testing.T) {
	for _, ext := range []string{"tar.xz", "7z"} {
		t.Run(ext, func(t *testing.T) {
			captureLog(t)
			srv := newArtifactServer(t, map[string][]byte{
				"/eksctl/eksctl_Linux_amd64." + ext: fixture(t, "eksctl."+ext),
			})
			r := testutil.NewFakeRunner().On("eksctl version", testutil.Fail(127), testutil.OK("0.190.0\n"))
			in := newTestInstaller(t, ubuntu(), r, srv)
			in.Config.Sources.EksctlArchive = "eksctl_{os}_{arch}." + ext

			res, err := Ensure(context.Background(), in.Eksctl())
			require.NoError(t, err)
			assert.Equal(t, Installed, res.Outcome)

			data, err := os.ReadFile(filepath.Join(in.Config.Install.BinDir, "eksctl"))
			require.NoError(t, err)
			assert.Equal(t, "#!/bin/sh\necho 0.190.0\n", string(data))
			assertTempEmpty(t, in)
		})
	}
}

func TestDownloadFailureRemovesTempDir(t *testing.T) {
	captureLog(t)
	srv := newArtifactServer(t, nil)
	r := testutil.NewFakeRunner().On("eksctl version", testutil.Fail(127))
	in := newTestInstaller(t, ubuntu(), r, srv)

	_, err := Ensure(context.Background(), in.Eksctl())

	var failure *InstallationFailedError
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "eksctl", failure.Tool)
	assert.Contains(t, err.Error(), "HTTP status 404")
	assertTempEmpty(t, in)
}

func TestInstallBinaryFallsBackToSudo(t *testing.T) {
	captureLog(t)
	srv := newArtifactServer(t, map[string][]byte{
		"/eksctl/eksctl_Linux_amd64.tar.gz": tarGz(t, archiveEntry{name: "eksctl", body: "eksctl-binary", mode: 0o755}),
	})
	r := testutil.NewFakeRunner().On("eksctl version", testutil.Fail(127), testutil.OK("0.190.0"))
	in := newTestInstaller(t, ubuntu(), r, srv)

	// A bin dir below a regular file cannot be created, even by root.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	in.Config.Install.BinDir = filepath.Join(blocker, "bin")

	_, err := Ensure(context.Background(), in.Eksctl())
	require.NoError(t, err)

	var install []string
	for _, c := range r.Calls() {
		if strings.HasPrefix(c, "sudo install -m 0755 ") {
			install = append(install, c)
		}
	}
	require.Len(t, install, 1)
	assert.True(t, strings.HasSuffix(install[0], filepath.Join(blocker, "bin", "eksctl")))
}

func TestAWSCLILinux(t *testing.T) {
	captureLog(t)
	srv := newArtifactServer(t, map[string][]byte{
		"/awscli/awscli-exe-linux-x86_64.zip": zipBytes(t,
			archiveEntry{name: "aws/install", body: "#!/bin/sh\n", mode: 0o755},
			archiveEntry{name: "aws/dist/aws", body: "binary", mode: 0o755},
		),
	})
	r := testutil.NewFakeRunner().On("aws --version",
		testutil.Fail(127),
		testutil.OK("aws-cli/2.15.30 Python/3.11.8 Linux/6.5.0 exe/x86_64.ubuntu.22\n"))
	in := newTestInstaller(t, ubuntu(), r, srv)

	var script string
	r.OnPrefix("sudo "+in.Config.Install.TempDir, testutil.Response{Do: func(c runner.Command) {
		script = c.Args[0]
		assert.FileExists(t, script, "installer runs from the extracted bundle")
	}})

	res, err := Ensure(context.Background(), in.AWSCLI())
	require.NoError(t, err)
	assert.Equal(t, Installed, res.Outcome)
	assert.Equal(t, "2.15.30", res.Version)

	require.NotEmpty(t, script)
	assert.Equal(t, filepath.Join("aws", "install"), filepath.Join(filepath.Base(filepath.Dir(script)), filepath.Base(script)))
	assert.Equal(t, 1, r.Count("sudo "+script+" --bin-dir "+in.Config.Install.BinDir))
	assertTempEmpty(t, in)
}

func TestAWSCLIVersionOneIsUpdatedInPlace(t *testing.T) {
	captureLog(t)
	srv := newArtifactServer(t, map[string][]byte{
		"/awscli/awscli-exe-linux-x86_64.zip": zipBytes(t, archiveEntry{name: "aws/install", body: "#!/bin/sh\n", mode: 0o755}),
	})
	r := testutil.NewFakeRunner().On("aws --version",
		testutil.OK("aws-cli/1.18.69 Python/2.7.18 Linux/5.4.0-1045-aws botocore/1.17.69\n"),
		testutil.OK("aws-cli/2.15.30 Python/3.11.8 Linux/6.5.0 exe/x86_64.ubuntu.22\n"))
	in := newTestInstaller(t, ubuntu(), r, srv)

	res, err := Ensure(context.Background(), in.AWSCLI())
	require.NoError(t, err)
	assert.Equal(t, Installed, res.Outcome)
	assert.Equal(t, "2.15.30", res.Version)

	require.Equal(t, 1, r.CountPrefix("sudo "+in.Config.Install.TempDir))
	var install string
	for _, c := range r.Calls() {
		if strings.HasPrefix(c, "sudo "+in.Config.Install.TempDir) {
			install = c
		}
	}
	assert.True(t, strings.HasSuffix(install, "--bin-dir "+in.Config.Install.BinDir+" --update"), install)
	assertTempEmpty(t, in)
}

func TestAWSCLIAcceptsAnyV2(t *testing.T) {
	captureLog(t)
	srv := newArtifactServer(t, nil)
	r := testutil.NewFakeRunner().On("aws --version", testutil.OK("aws-cli/2.9.0 Python/3.9.11 Linux/5.15.0 exe/x86_64.ubuntu.22"))
	in := newTestInstaller(t, ubuntu(), r, srv)

	res, err := Ensure(context.Background(), in.AWSCLI())
	require.NoError(t, err)
	assert.Equal(t, Satisfied, res.Outcome)
	assert.Equal(t, "2.9.0", res.Version)
	assert.Equal(t, []string{"aws --version"}, r.Calls())
	assert.Zero(t, srv.Hits("/awscli/awscli-exe-linux-x86_64.zip"))
}

func TestIsAWSCLIv2(t *testing.T) {
	for version, want := range map[string]bool{
		"2.15.30": true,
		"2.0.0":   true,
		"1.18.69": false,
		"3.0.0":   false,
		"":        false,
	} {
		assert.Equal(t, want, isAWSCLIv2(version), version)
	}
}

func TestAWSCLIMacOS(t *testing.T) {
	captureLog(t)
	srv := newArtifactServer(t, map[string][]byte{"/awscli/AWSCLIV2.pkg": []byte("pkg")})
	r := testutil.NewFakeRunner().On("aws --version", testutil.Fail(127), testutil.OK("aws-cli/2.15.30 Python/3.11.8 Darwin/23.0.0"))
	in := newTestInstaller(t, macOS(), r, srv)

	_, err := Ensure(context.Background(), in.AWSCLI())
	require.NoError(t, err)
	assert.Equal(t, 1, r.CountPrefix("sudo installer -pkg "+in.Config.Install.TempDir))
	assertTempEmpty(t, in)
}

func TestKubectlLatestStable(t *testing.T) {
	captureLog(t)
	arm, err := platform.Detect("Linux", "aarch64", map[string]string{"ID": "amzn"})
	require.NoError(t, err)
	srv := newArtifactServer(t, map[string][]byte{
		"/k8s/stable.txt":                      []byte("v1.30.2\n"),
		"/k8s/v1.30.2/bin/linux/arm64/kubectl": []byte("kubectl-binary"),
	})
	r := testutil.NewFakeRunner().On("kubectl version --client", testutil.Fail(1), testutil.OK("Client Version: v1.30.2\n"))
	in := newTestInstaller(t, arm, r, srv)

	res, err := Ensure(context.Background(), in.Kubectl())
	require.NoError(t, err)
	assert.Equal(t, "1.30.2", res.Version)

	info, err := os.Stat(filepath.Join(in.Config.Install.BinDir, "kubectl"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o111)
	assertTempEmpty(t, in)
}

func TestKubectlRejectsBadStableVersion(t *testing.T) {
	captureLog(t)
	srv := newArtifactServer(t, map[string][]byte{"/k8s/stable.txt": []byte("<html>maintenance</html>")})
	r := testutil.NewFakeRunner().On("kubectl version --client", testutil.Fail(127))
	in := newTestInstaller(t, ubuntu(), r, srv)

	_, err := Ensure(context.Background(), in.Kubectl())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected kubectl stable version")
}

func TestCDKPin(t *testing.T) {
	tests := []struct {
		name    string
		probes  []testutil.Response
		want    Outcome
		command string // expected npm command, empty when none
	}{
		{
			name:   "pinned version installed",
			probes: []testutil.Response{testutil.OK("2.177.0 (build b396961)\n")},
			want:   Satisfied,
		},
		{
			name:    "other version installed",
			probes:  []testutil.Response{testutil.OK("2.170.0 (build 1a2b3c4)\n"), testutil.OK("2.177.0 (build b396961)\n")},
			want:    Installed,
			command: "npm install -g --force aws-cdk@2.177.0",
		},
		{
			name:    "not installed",
			probes:  []testutil.Response{testutil.Fail(127), testutil.OK("2.177.0 (build b396961)\n")},
			want:    Installed,
			command: "npm install -g aws-cdk@2.177.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)
			r := testutil.NewFakeRunner().On("cdk --version", tt.probes...)
			in := newTestInstaller(t, ubuntu(), r, nil)

			res, err := Ensure(context.Background(), in.CDK())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, "2.177.0", res.Version)

			if tt.command == "" {
				assert.Zero(t, r.CountPrefix("npm "))
				return
			}
			assert.Equal(t, 1, r.CountPrefix("npm "))
			assert.Equal(t, 1, r.Count(tt.command))
		})
	}
}

func TestCDKWrongVersionAfterInstall(t *testing.T) {
	captureLog(t)
	r := testutil.NewFakeRunner().On("cdk --version", testutil.OK("2.170.0"))
	in := newTestInstaller(t, ubuntu(), r, nil)

	_, err := Ensure(context.Background(), in.CDK())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found version 2.170.0 after install")
}

func TestBootstrapPackages(t *testing.T) {
	t.Run("apt", func(t *testing.T) {
		captureLog(t)
		r := testutil.NewFakeRunner()
		in := newTestInstaller(t, ubuntu(), r, nil)

		require.NoError(t, in.BootstrapPackages(context.Background()))
		assert.Equal(t, []string{
			"sudo apt-get update -y",
			"sudo apt-get install -y unzip tar curl ca-certificates gnupg",
		}, r.Calls())
	})

	t.Run("yum as root", func(t *testing.T) {
		captureLog(t)
		rhel, err := platform.Detect("Linux", "x86_64", map[string]string{"ID": "rocky", "ID_LIKE": "rhel centos fedora"})
		require.NoError(t, err)
		r := testutil.NewFakeRunner()
		in := newTestInstaller(t, rhel, r, nil)
		in.UseSudo = false

		require.NoError(t, in.BootstrapPackages(context.Background()))
		assert.Equal(t, []string{
			"yum makecache -y",
			"yum install -y unzip tar curl ca-certificates",
		}, r.Calls())
	})

	t.Run("brew missing", func(t *testing.T) {
		captureLog(t)
		r := testutil.NewFakeRunner()
		in := newTestInstaller(t, macOS(), r, nil)

		err := in.BootstrapPackages(context.Background())
		var failure *InstallationFailedError
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, "packages", failure.Tool)
		assert.Contains(t, err.Error(), "Homebrew is required")
		assert.Empty(t, r.Calls())
	})

	t.Run("brew without prerequisites", func(t *testing.T) {
		captureLog(t)
		r := testutil.NewFakeRunner()
		r.Paths["brew"] = "/opt/homebrew/bin/brew"
		in := newTestInstaller(t, macOS(), r, nil)

		require.NoError(t, in.BootstrapPackages(context.Background()))
		assert.Equal(t, []string{"brew update"}, r.Calls())
	})

	t.Run("refresh failure stops", func(t *testing.T) {
		captureLog(t)
		r := testutil.NewFakeRunner().On("sudo apt-get update -y", testutil.Fail(100))
		in := newTestInstaller(t, ubuntu(), r, nil)

		err := in.BootstrapPackages(context.Background())
		var failure *InstallationFailedError
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, 100, failure.Status)
		assert.Zero(t, r.CountPrefix("sudo apt-get install"))
	})
}

func TestDockerDebian(t *testing.T) {
	buf := captureLog(t)
	srv := newArtifactServer(t, map[string][]byte{"/docker/linux/ubuntu/gpg": []byte("KEY")})
	r := testutil.NewFakeRunner().
		On("docker --version", testutil.Fail(127), testutil.OK("Docker version 24.0.7, build afdd53b\n")).
		On("dpkg --print-architecture", testutil.OK("amd64\n"))
	in := newTestInstaller(t, ubuntu(), r, srv)

	var list string
	r.OnPrefix("sudo install -m 0644 ", testutil.Response{Do: func(c runner.Command) {
		if strings.HasSuffix(c.Args[3], "docker.list") {
			data, err := os.ReadFile(c.Args[3])
			require.NoError(t, err)
			list = string(data)
		}
	}})

	res, err := Ensure(context.Background(), in.Docker())
	require.NoError(t, err)
	assert.Equal(t, "24.0.7", res.Version)

	assert.Equal(t, "deb [arch=amd64 signed-by=/etc/apt/keyrings/docker.asc] "+srv.URL+"/docker/linux/ubuntu jammy stable\n", list)
	calls := r.Calls()
	assert.Contains(t, calls, "sudo apt-get install -y docker-ce docker-ce-cli containerd.io docker-buildx-plugin docker-compose-plugin")
	assert.Contains(t, calls, "sudo systemctl enable --now docker")
	assert.Contains(t, calls, "sudo usermod -aG docker ops")
	assert.Contains(t, buf.String(), "Log out and back in")
	assertTempEmpty(t, in)
}

func TestDockerRHELPicksDistroRepo(t *testing.T) {
	tests := []struct {
		id, idLike, repo string
	}{
		{"fedora", "", "fedora"},
		{"rhel", "fedora", "rhel"},
		{"centos", "rhel fedora", "centos"},
		{"rocky", "rhel centos fedora", "centos"},
		{"almalinux", "rhel centos fedora", "centos"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			captureLog(t)
			desc, err := platform.Detect("Linux", "x86_64", map[string]string{"ID": tt.id, "ID_LIKE": tt.idLike})
			require.NoError(t, err)
			r := testutil.NewFakeRunner().On("docker --version", testutil.Fail(127), testutil.OK("Docker version 26.1.3, build b72abbb"))
			in := newTestInstaller(t, desc, r, nil)
			in.Config.Sources.Docker = "https://download.docker.com"

			_, err = Ensure(context.Background(), in.Docker())
			require.NoError(t, err)
			assert.Equal(t, 1, r.Count("sudo yum-config-manager --add-repo https://download.docker.com/linux/"+tt.repo+"/docker-ce.repo"))
			assert.Equal(t, 1, r.Count("sudo yum install -y docker-ce docker-ce-cli containerd.io docker-buildx-plugin docker-compose-plugin"))
		})
	}
}

func TestDockerAmazon(t *testing.T) {
	captureLog(t)
	amzn, err := platform.Detect("Linux", "x86_64", map[string]string{"ID": "amzn"})
	require.NoError(t, err)
	r := testutil.NewFakeRunner().On("docker --version", testutil.Fail(127), testutil.OK("Docker version 25.0.3, build 4debf41"))
	in := newTestInstaller(t, amzn, r, nil)

	_, err = Ensure(context.Background(), in.Docker())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"docker --version",
		"sudo yum install -y docker",
		"sudo systemctl enable --now docker",
		"sudo usermod -aG docker ops",
		"docker --version",
	}, r.Calls())
}

func TestDockerMacOSIsDeferred(t *testing.T) {
	t.Run("continues by default", func(t *testing.T) {
		buf := captureLog(t)
		r := testutil.NewFakeRunner().On("docker --version", testutil.Fail(127))
		in := newTestInstaller(t, macOS(), r, nil)

		res, err := Ensure(context.Background(), in.Docker())
		require.NoError(t, err)
		assert.Equal(t, Degraded, res.Outcome)
		assert.Contains(t, buf.String(), "Docker Desktop must be installed manually")
		assert.Zero(t, r.CountPrefix("sudo "))
	})

	t.Run("fatal when strict", func(t *testing.T) {
		captureLog(t)
		r := testutil.NewFakeRunner().On("docker --version", testutil.Fail(127))
		in := newTestInstaller(t, macOS(), r, nil)
		in.Config.Policy.Strict = true

		_, err := Ensure(context.Background(), in.Docker())
		var failure *InstallationFailedError
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, "docker", failure.Tool)
	})
}

func TestNodeInstallsNVMAndActivatesLTS(t *testing.T) {
	captureLog(t)
	nvmDir := filepath.Join(t.TempDir(), "nvm")
	t.Setenv("NVM_DIR", nvmDir)
	t.Setenv("PATH", "/usr/bin")

	srv := newArtifactServer(t, map[string][]byte{"/nvm/v0.39.7/install.sh": []byte("echo install nvm")})
	r := testutil.NewFakeRunner().
		On("bash -c "+nvmProbeScript, testutil.OK("0.39.7\nv20.11.0\n")).
		On("bash -c "+nvmBinScript, testutil.OK("/opt/nvm/versions/node/v20.11.0/bin\n"))
	in := newTestInstaller(t, ubuntu(), r, srv)
	r.OnPrefix("bash "+in.Config.Install.TempDir, testutil.Response{Do: func(runner.Command) {
		require.NoError(t, os.WriteFile(filepath.Join(nvmDir, "nvm.sh"), []byte("nvm() { :; }"), 0o644))
	}})

	res, err := in.EnsureNode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Installed, res.Outcome)
	assert.Equal(t, "20.11.0", res.Version)

	assert.Equal(t, 1, r.Count("bash -c "+nvmLTSScript))
	assert.Equal(t, "/opt/nvm/versions/node/v20.11.0/bin"+string(os.PathListSeparator)+"/usr/bin", os.Getenv("PATH"))
	for _, c := range r.Commands() {
		if c.Name == "bash" {
			assert.Contains(t, c.Env, "NVM_DIR="+nvmDir)
		}
	}
	assertTempEmpty(t, in)
}

func TestNodeAlreadyInstalled(t *testing.T) {
	captureLog(t)
	nvmDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(nvmDir, "nvm.sh"), nil, 0o644))
	t.Setenv("NVM_DIR", nvmDir)
	t.Setenv("PATH", "/usr/bin")

	r := testutil.NewFakeRunner().
		On("bash -c "+nvmProbeScript, testutil.OK("0.39.7\nv20.11.0\n")).
		On("bash -c "+nvmBinScript, testutil.OK("/opt/nvm/versions/node/v20.11.0/bin\n"))
	in := newTestInstaller(t, ubuntu(), r, nil)

	res, err := in.EnsureNode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Satisfied, res.Outcome)
	assert.Zero(t, r.Count("bash -c "+nvmLTSScript))
	assert.True(t, strings.HasPrefix(os.Getenv("PATH"), "/opt/nvm/versions/node/v20.11.0/bin"))
}

func TestNodeProbeRejectsMissingLTS(t *testing.T) {
	captureLog(t)
	nvmDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(nvmDir, "nvm.sh"), nil, 0o644))
	t.Setenv("NVM_DIR", nvmDir)

	r := testutil.NewFakeRunner().On("bash -c "+nvmProbeScript, testutil.OK("0.39.7\nN/A\n"))
	in := newTestInstaller(t, ubuntu(), r, nil)

	p := in.probeNode(context.Background())
	assert.False(t, p.Found)
	assert.Error(t, p.Err)
}

func TestNodeDegradesToSystemNode(t *testing.T) {
	setup := func(t *testing.T, systemNode bool) (*Installer, *testutil.FakeRunner) {
		t.Setenv("NVM_DIR", filepath.Join(t.TempDir(), "nvm"))
		t.Setenv("PATH", "/usr/bin")
		r := testutil.NewFakeRunner()
		if systemNode {
			r.On("node --version", testutil.OK("v18.19.0\n"))
		} else {
			r.On("node --version", testutil.Fail(127))
		}
		srv := newArtifactServer(t, nil) // nvm install script missing
		return newTestInstaller(t, ubuntu(), r, srv), r
	}

	t.Run("system node present", func(t *testing.T) {
		buf := captureLog(t)
		in, r := setup(t, true)

		res, err := in.EnsureNode(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Degraded, res.Outcome)
		assert.Contains(t, buf.String(), "continuing with system Node.js v18.19.0")
		assert.Zero(t, r.Count("bash -c "+nvmBinScript), "PATH is not touched")
		assert.Equal(t, "/usr/bin", os.Getenv("PATH"))
	})

	t.Run("no node at all", func(t *testing.T) {
		captureLog(t)
		in, _ := setup(t, false)

		_, err := in.EnsureNode(context.Background())
		var failure *InstallationFailedError
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, "node", failure.Tool)
	})

	t.Run("strict", func(t *testing.T) {
		captureLog(t)
		in, r := setup(t, true)
		in.Config.Policy.Strict = true

		_, err := in.EnsureNode(context.Background())
		require.Error(t, err)
		assert.Zero(t, r.Count("node --version"))
	})
}
