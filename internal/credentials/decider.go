package credentials

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"env-bootstrap/internal/logger"
)

// Choice is the operator's answer when no identity resolves.
type Choice int

const (
	Continue  Choice = iota // go on without credentials
	Configure               // run `aws configure`, then probe again
)

func (c Choice) String() string {
	if c == Configure {
		return "configure"
	}
	return "continue"
}

// Decider supplies the remediation choice.
type Decider interface {
	Choose(ctx context.Context) (Choice, error)
}

// ParseChoice reads only the first character: 1 or a configures, anything
// else continues.
func ParseChoice(input string) Choice {
	input = strings.TrimSpace(input)
	if input == "" {
		return Continue
	}
	switch input[0] {
	case '1', 'a', 'A':
		return Configure
	default:
		return Continue
	}
}

const promptText = `AWS credentials are not configured. Choose an option:
  [1/a] Run 'aws configure' now
  [2/b] Continue without credentials
> `

// PromptDecider asks on the terminal.
type PromptDecider struct {
	In  io.Reader
	Out io.Writer

	// Interactive reports whether In is a terminal. Without one the prompt
	// is skipped and the run continues.
	Interactive func() bool
}

// NewPromptDecider prompts on the process's stdin and stdout.
func NewPromptDecider() *PromptDecider {
	return &PromptDecider{
		In:  os.Stdin,
		Out: os.Stdout,
		Interactive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}

func (d *PromptDecider) Choose(_ context.Context) (Choice, error) {
	if d.Interactive != nil && !d.Interactive() {
		logger.Warn("Standard input is not a terminal; continuing without credentials")
		return Continue, nil
	}
	if _, err := fmt.Fprint(d.Out, promptText); err != nil {
		return Continue, err
	}
	line, err := bufio.NewReader(d.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Continue, fmt.Errorf("failed to read choice: %w", err)
	}
	return ParseChoice(line), nil
}

// ScriptedDecider always answers with Choice and counts how often it was asked.
type ScriptedDecider struct {
	Choice Choice
	Asked  int
}

func (d *ScriptedDecider) Choose(context.Context) (Choice, error) {
	d.Asked++
	return d.Choice, nil
}
