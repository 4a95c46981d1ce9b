// Package installer brings each required tool to a usable state on the host.
//
// Every tool is described as a Tool requirement (probe, install, optional
// degrade) and driven through Ensure, which skips work when the probe is
// already satisfied. Steps read the platform from an immutable Descriptor and
// execute commands through a runner.Runner, so the same code runs against the
// real host or a scripted fake.
package installer

import (
	"context"
	"net/http"
	"os"
	"os/user"

	"env-bootstrap/internal/config"
	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/platform"
	"env-bootstrap/internal/runner"
)

// Installer carries what every step needs. Build it with New.
type Installer struct {
	Platform platform.Descriptor
	Runner   runner.Runner
	HTTP     *http.Client
	Config   config.Config

	Home    string // the operator's home directory, used for the nvm default
	User    string // login added to the docker group
	UseSudo bool   // prefix privileged commands with sudo
}

// New returns an Installer for the current process.
func New(desc platform.Descriptor, r runner.Runner, cfg config.Config) *Installer {
	in := &Installer{
		Platform: desc,
		Runner:   r,
		HTTP:     http.DefaultClient,
		Config:   cfg,
		UseSudo:  os.Geteuid() != 0,
	}
	if home, err := os.UserHomeDir(); err == nil {
		in.Home = home
	}
	in.User = invokingUser()
	return in
}

// invokingUser prefers SUDO_USER so running the tool under sudo still adds
// the real operator to the docker group.
func invokingUser() string {
	if u := os.Getenv("SUDO_USER"); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	logger.Debug("Could not determine the current user")
	return os.Getenv("USER")
}

// probe runs cmd and extracts a version with parse.
func (in *Installer) probe(ctx context.Context, cmd runner.Command, parse func(string) string) Probe {
	out, err := in.Runner.Run(ctx, cmd)
	if err != nil {
		return Probe{Err: err}
	}
	return Probe{Found: true, Version: parse(string(out))}
}
