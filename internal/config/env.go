package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"env-bootstrap/internal/logger"
)

// Environment variable names read at startup.
const (
	EnvProjectDir  = "PROJECT_DIR"
	EnvProjectName = "PROJECT_NAME"
)

// LoadEnv loads envFile (if set) into the process environment and then reads
// the project variables. Variables already set in the environment win over
// the file, so an operator can override a single value on the command line.
func LoadEnv(envFile string) (Env, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Env{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		logger.Debug("Loaded environment from %s", envFile)
	}

	env := Env{
		ProjectDir:  strings.TrimSpace(os.Getenv(EnvProjectDir)),
		ProjectName: strings.TrimSpace(os.Getenv(EnvProjectName)),
	}
	logger.Debug("%s=%q %s=%q", EnvProjectDir, env.ProjectDir, EnvProjectName, env.ProjectName)
	return env, nil
}
