// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"env-bootstrap/internal/runner"
)

// Response is one scripted result for a command.
type Response struct {
	Output string
	Status int                  // nonzero makes Run return a *runner.CommandError
	Do     func(runner.Command) // side effect applied before returning
}

// OK is a successful response with the given output.
func OK(output string) Response { return Response{Output: output} }

// Fail is a response exiting with status.
func Fail(status int) Response { return Response{Status: status} }

// FakeRunner plays back scripted responses keyed by the command line.
// Responses for a command are consumed in order; the last one repeats.
// Commands without a script succeed with empty output unless Strict is set.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string][]Response
	prefixes  []prefixScript
	calls     []runner.Command

	// Paths maps executable names to LookPath results; missing names fail.
	Paths map[string]string

	// Strict makes unscripted commands fail with status 127.
	Strict bool
}

type prefixScript struct {
	prefix string
	resp   Response
}

var _ runner.Runner = (*FakeRunner)(nil)

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: map[string][]Response{}, Paths: map[string]string{}}
}

// On scripts responses for the exact command line cmd.
func (f *FakeRunner) On(cmd string, resps ...Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmd] = append(f.responses[cmd], resps...)
	return f
}

// OnPrefix scripts a response for every command line starting with prefix.
// Exact scripts take precedence.
func (f *FakeRunner) OnPrefix(prefix string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixes = append(f.prefixes, prefixScript{prefix: prefix, resp: resp})
	return f
}

// Run records cmd and returns its next scripted response.
func (f *FakeRunner) Run(_ context.Context, cmd runner.Command) ([]byte, error) {
	f.mu.Lock()
	line := cmd.String()
	f.calls = append(f.calls, cmd)
	resp, ok := f.next(line)
	f.mu.Unlock()

	if !ok {
		if f.Strict {
			resp = Response{Status: 127, Output: line + ": command not found"}
		}
	}
	if resp.Do != nil {
		resp.Do(cmd)
	}
	if resp.Status != 0 {
		return []byte(resp.Output), &runner.CommandError{
			Command: line,
			Status:  resp.Status,
			Output:  []byte(resp.Output),
			Err:     fmt.Errorf("exit status %d", resp.Status),
		}
	}
	return []byte(resp.Output), nil
}

func (f *FakeRunner) next(line string) (Response, bool) {
	if queue, ok := f.responses[line]; ok && len(queue) > 0 {
		resp := queue[0]
		if len(queue) > 1 {
			f.responses[line] = queue[1:]
		}
		return resp, true
	}
	for _, p := range f.prefixes {
		if strings.HasPrefix(line, p.prefix) {
			return p.resp, true
		}
	}
	return Response{}, false
}

// LookPath resolves name from Paths.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// Calls returns every command line run so far, in order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.calls))
	for i, c := range f.calls {
		lines[i] = c.String()
	}
	return lines
}

// Commands returns the recorded commands with their full options.
func (f *FakeRunner) Commands() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runner.Command(nil), f.calls...)
}

// Count returns how often the exact command line was run.
func (f *FakeRunner) Count(line string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == line {
			n++
		}
	}
	return n
}

// CountPrefix returns how many command lines started with prefix.
func (f *FakeRunner) CountPrefix(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
