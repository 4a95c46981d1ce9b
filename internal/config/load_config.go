package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCDKVersion is the aws-cdk release the project is tested against.
const DefaultCDKVersion = "2.177.0"

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Tools: Tools{
			CDKVersion: DefaultCDKVersion,
			NVMVersion: "v0.39.7",
			Prerequisites: map[string][]string{
				"apt":  {"unzip", "tar", "curl", "ca-certificates", "gnupg"},
				"yum":  {"unzip", "tar", "curl", "ca-certificates"},
				"brew": {},
			},
		},
		Sources: Sources{
			AWSCLI:        "https://awscli.amazonaws.com",
			AWSCLIArchive: "awscli-exe-linux-{arch}.zip",
			Eksctl:        "https://github.com/eksctl-io/eksctl/releases/latest/download",
			EksctlArchive: "eksctl_{os}_{arch}.tar.gz",
			Kubectl:       "https://dl.k8s.io/release",
			NVM:           "https://raw.githubusercontent.com/nvm-sh/nvm",
			Docker:        "https://download.docker.com",
		},
		Install: Install{
			BinDir: "/usr/local/bin",
		},
		Project: Project{
			ConfigFile: "lib/config.ts",
		},
	}
}

// LoadConfig reads the YAML file at path on top of Default(). Keys missing from
// the file keep their default value. An empty path returns Default().
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}

	if cfg.Tools.CDKVersion == "" {
		return Config{}, fmt.Errorf("config %s: tools.cdk_version must not be empty", path)
	}
	// An empty value in the file means "use the default", not "no value".
	def := Default()
	if cfg.Install.BinDir == "" {
		cfg.Install.BinDir = def.Install.BinDir
	}
	if cfg.Sources.AWSCLIArchive == "" {
		cfg.Sources.AWSCLIArchive = def.Sources.AWSCLIArchive
	}
	if cfg.Sources.EksctlArchive == "" {
		cfg.Sources.EksctlArchive = def.Sources.EksctlArchive
	}
	return cfg, nil
}
