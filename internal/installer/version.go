package installer

import (
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// versionPattern finds the first dotted version in free-form CLI output,
// e.g. "Client Version: v1.30.1" or "2.177.0 (build b396961)".
var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.-]+)?)`)

// awsVersionPattern matches `aws --version`, which also prints the Python
// and OS versions on the same line.
var awsVersionPattern = regexp.MustCompile(`aws-cli/(\S+)`)

// ParseVersion returns the first version number in output, without a leading v.
func ParseVersion(output string) string {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return ""
	}
	return m[1]
}

func parseAWSVersion(output string) string {
	if m := awsVersionPattern.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	return ParseVersion(output)
}

// SameVersion reports whether a and b name the same release. Both may carry
// a leading "v". Valid semantic versions are compared canonically.
func SameVersion(a, b string) bool {
	ca, cb := canonical(a), canonical(b)
	if semver.IsValid(ca) && semver.IsValid(cb) {
		return semver.Compare(ca, cb) == 0
	}
	return strings.TrimPrefix(strings.TrimSpace(a), "v") == strings.TrimPrefix(strings.TrimSpace(b), "v")
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
