package project

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"env-bootstrap/internal/logger"
)

// projectNamePattern matches the declaration up to the end of its value: a
// quoted literal, or an unquoted expression that stops before a comment.
// Group 1 is the optional semicolon.
var projectNamePattern = regexp.MustCompile(`(?m)^export const PROJECT_NAME = ` +
	`(?:'[^'\r\n]*'|"[^"\r\n]*"|` + "`[^`\r\n]*`" + `|[^;\r\n/\s](?:[^;\r\n/]*[^;\r\n/\s])?)?(;?)`)

// PatchProjectName rewrites the PROJECT_NAME constant in path to name.
// Only the value changes; a trailing semicolon or comment is kept.
func PatchProjectName(path, name string) error {
	if name == "" || strings.ContainsAny(name, "'\\\r\n") {
		return &ConfigurationError{Reason: ReasonInvalidName + " " + strconv.Quote(name), Path: path}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ConfigurationError{Reason: ReasonMissingConfig, Path: path}
		}
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	locs := projectNamePattern.FindAllSubmatchIndex(data, -1)
	switch len(locs) {
	case 0:
		return &ConfigurationError{Reason: ReasonMissingConstant, Path: path}
	case 1:
	default:
		return &ConfigurationError{Reason: ReasonDuplicateConstant, Path: path}
	}

	loc := locs[0]
	line := "export const PROJECT_NAME = '" + name + "'" + string(data[loc[2]:loc[3]])
	out := make([]byte, 0, len(data)+len(name))
	out = append(out, data[:loc[0]]...)
	out = append(out, line...)
	out = append(out, data[loc[1]:]...)

	if string(out) == string(data) {
		logger.Info("PROJECT_NAME is already '%s' in %s", name, path)
		return nil
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return err
	}
	logger.Info("Set PROJECT_NAME to '%s' in %s", name, path)
	return nil
}
