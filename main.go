package main

import (
	"env-bootstrap/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// env-bootstrap prepares a host for deploying an AWS CDK application:
//   - Detects the platform once (kernel, distribution family, package manager, architecture)
//   - Installs the AWS CLI, eksctl, kubectl, Docker, nvm with the Node.js LTS and the pinned aws-cdk,
//     probing each tool first so repeated runs only do the missing work
//   - Resolves the AWS identity, offering `aws configure` when none is found
//   - Installs the CDK project's dependencies, runs `cdk bootstrap` and `cdk list`,
//     and optionally renames the project in its config file
//
// The first fatal error stops the run and the process exits with status 1.
func main() {
	cmd.Execute()
}
