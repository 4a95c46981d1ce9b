// Package platform works out which operating system family, package manager
// and CPU architecture the run targets. The result is computed once and
// passed by value to every installer step.
package platform

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/runner"
)

// Family is the operating system family.
type Family string

const (
	FamilyDebian      Family = "linux-debian"
	FamilyRHEL        Family = "linux-rhel-like"
	FamilyAmazon      Family = "linux-amazon"
	FamilyMacOS       Family = "macos"
	FamilyUnsupported Family = "unsupported"
)

// PackageManager names the system package manager family.
type PackageManager string

const (
	Apt  PackageManager = "apt"
	Yum  PackageManager = "yum"
	Brew PackageManager = "brew"
	None PackageManager = "none"
)

// Normalised architectures.
const (
	AMD64 = "amd64"
	ARM64 = "arm64"
)

// OSReleasePath is the standard distribution descriptor on Linux.
var OSReleasePath = "/etc/os-release"

// Descriptor is the immutable platform record for one run.
type Descriptor struct {
	Family         Family
	PackageManager PackageManager
	Arch           string
	Kernel         string // raw `uname -s`
	Distro         string // os-release ID, empty on macOS
	Codename       string // os-release VERSION_CODENAME, used for apt repositories
}

// IsLinux reports whether the descriptor is any Linux family.
func (d Descriptor) IsLinux() bool {
	return d.Family == FamilyDebian || d.Family == FamilyRHEL || d.Family == FamilyAmazon
}

// IsMacOS reports whether the descriptor is macOS.
func (d Descriptor) IsMacOS() bool { return d.Family == FamilyMacOS }

// KernelName is the capitalised kernel name vendors use in artifact names.
func (d Descriptor) KernelName() string {
	if d.IsMacOS() {
		return "Darwin"
	}
	return "Linux"
}

// GOOS is the lower-case kernel name used in Go-style download paths.
func (d Descriptor) GOOS() string {
	if d.IsMacOS() {
		return "darwin"
	}
	return "linux"
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s/%s (%s)", d.Family, d.Arch, d.PackageManager)
}

// UnsupportedPlatformError is returned for kernels other than Linux and Darwin.
type UnsupportedPlatformError struct {
	Kernel string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: kernel %q is neither Linux nor Darwin", e.Kernel)
}

// Detect builds a Descriptor from `uname -s`, `uname -m` and the parsed
// os-release fields. osRelease is ignored on Darwin and may be nil on Linux,
// in which case the default package manager is used.
func Detect(kernel, machine string, osRelease map[string]string) (Descriptor, error) {
	d := Descriptor{Kernel: kernel, Arch: NormalizeArch(machine)}

	switch strings.ToLower(strings.TrimSpace(kernel)) {
	case "darwin":
		d.Family, d.PackageManager = FamilyMacOS, Brew
	case "linux":
		d.Distro = strings.ToLower(osRelease["ID"])
		d.Codename = osRelease["VERSION_CODENAME"]
		d.Family, d.PackageManager = linuxFamily(osRelease)
	default:
		return Descriptor{Family: FamilyUnsupported, PackageManager: None, Kernel: kernel, Arch: d.Arch},
			&UnsupportedPlatformError{Kernel: kernel}
	}
	return d, nil
}

func linuxFamily(osRelease map[string]string) (Family, PackageManager) {
	ids := []string{strings.ToLower(osRelease["ID"])}
	ids = append(ids, strings.Fields(strings.ToLower(osRelease["ID_LIKE"]))...)

	for _, id := range ids {
		switch id {
		case "amzn":
			return FamilyAmazon, Yum
		case "ubuntu", "debian":
			return FamilyDebian, Apt
		case "rhel", "centos", "fedora", "rocky", "almalinux":
			return FamilyRHEL, Yum
		}
	}

	logger.Warn("Unrecognized Linux distribution %q, defaulting to %s", osRelease["ID"], Apt)
	return FamilyDebian, Apt
}

// NormalizeArch maps `uname -m` output to the names vendors publish under.
// x86_64 becomes amd64 and aarch64 becomes arm64; an empty string defaults to
// amd64; anything else is passed through unchanged.
func NormalizeArch(machine string) string {
	m := strings.TrimSpace(machine)
	switch strings.ToLower(m) {
	case "x86_64", "amd64":
		return AMD64
	case "aarch64", "arm64":
		return ARM64
	case "":
		return AMD64
	}
	logger.Debug("Architecture %q is not normalised, using it verbatim", m)
	return m
}

// ParseOSRelease reads an os-release file into a key/value map.
func ParseOSRelease(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fields, nil
}

// DetectHost runs uname through r and inspects /etc/os-release on Linux.
func DetectHost(ctx context.Context, r runner.Runner) (Descriptor, error) {
	kernel, err := r.Run(ctx, runner.Command{Name: "uname", Args: []string{"-s"}})
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read kernel name: %w", err)
	}
	machine, err := r.Run(ctx, runner.Command{Name: "uname", Args: []string{"-m"}})
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read machine architecture: %w", err)
	}

	var osRelease map[string]string
	if strings.EqualFold(strings.TrimSpace(string(kernel)), "linux") {
		osRelease, err = ParseOSRelease(OSReleasePath)
		if err != nil {
			logger.Warn("Could not read %s: %v", OSReleasePath, err)
		}
	}

	d, err := Detect(strings.TrimSpace(string(kernel)), strings.TrimSpace(string(machine)), osRelease)
	if err != nil {
		return d, err
	}
	logger.Info("Detected platform %s", d)
	return d, nil
}
