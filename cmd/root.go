package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"env-bootstrap/internal/logger"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// Global flags shared by every subcommand.
var (
	configPath     string // --config: optional YAML overrides
	envFile        string // --env-file: loaded into the environment before PROJECT_DIR is read
	reportPath     string // --report: where to write the JSON run report
	strict         bool   // --strict: macOS Docker absence and nvm degrade become fatal
	nonInteractive bool   // --non-interactive: never prompt, continue without credentials
)

// rootCmd is the base command for the CLI tool `env-bootstrap`.
// Invoked without a subcommand it performs the full run.
var rootCmd = &cobra.Command{
	Use:   "env-bootstrap",                                               // The name of the CLI tool
	Short: "Prepare a workstation or build host for AWS CDK deployments", // Short description shown in help output
	Long: `env-bootstrap installs the AWS CLI, eksctl, kubectl, Docker, Node.js (via nvm)
and the pinned AWS CDK, checks for AWS credentials and bootstraps the CDK project
in $PROJECT_DIR. Every step probes first, so running it again is safe.`,
	// Execute logs the error itself, so cobra prints neither usage nor the error
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug) // Set up logging (verbose if --debug is true)
	},
	// Without a subcommand, do everything
	RunE: runAll,
}

func init() {
	// Register the global flags before any command is executed
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file (built-in defaults when empty)")
	flags.StringVar(&envFile, "env-file", "", "Load environment variables such as PROJECT_DIR from this file")
	flags.StringVar(&reportPath, "report", "", "Write a JSON run report to this path")
	flags.BoolVar(&strict, "strict", false, "Treat a missing Docker on macOS and an unverified nvm as fatal")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; continue without credentials when none resolve")

	// Add the full run and the per-stage subcommands (defined in run.go and steps.go)
	rootCmd.AddCommand(runCmd, detectCmd, toolsCmd, credentialsCmd, projectCmd)
}

// Execute runs the CLI. Any error is logged once and exits with status 1.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
