package executor

import (
	"context"
	"strings"
	"sync"
)

// Response is a canned command result for Fake.
type Response struct {
	Output   string
	ExitCode int
}

// Fake is an in-memory Executor for tests. Commands without a registered
// response return empty output and Default as exit code.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	prefixes  map[string]Response
	calls     []string

	Default int
}

// NewFake returns a Fake whose unknown commands exit with 127.
func NewFake() *Fake {
	return &Fake{
		responses: make(map[string]Response),
		prefixes:  make(map[string]Response),
		Default:   127,
	}
}

// On registers the response for an exact command string.
func (f *Fake) On(command, output string, exitCode int) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[command] = Response{Output: output, ExitCode: exitCode}
	return f
}

// OnPrefix registers the response for every command starting with prefix.
func (f *Fake) OnPrefix(prefix, output string, exitCode int) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixes[prefix] = Response{Output: output, ExitCode: exitCode}
	return f
}

func (f *Fake) Run(ctx context.Context, command string) (string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, command)
	if ctx != nil && ctx.Err() != nil {
		return "", -1
	}
	if r, ok := f.responses[command]; ok {
		return r.Output, r.ExitCode
	}

	// Longest matching prefix wins.
	best := ""
	for p := range f.prefixes {
		if strings.HasPrefix(command, p) && len(p) > len(best) {
			best = p
		}
	}
	if best != "" {
		r := f.prefixes[best]
		return r.Output, r.ExitCode
	}
	return "", f.Default
}

// Calls returns a copy of every command run so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Reset forgets recorded calls but keeps responses.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
