// Package executor runs compositor and helper commands through the shell.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/bnema/wayper/internal/logger"
)

// Executor runs a shell command and returns its captured stdout and exit status.
// An exit status of -1 means the command could not be started or was cancelled.
type Executor interface {
	Run(ctx context.Context, command string) (output string, exitCode int)
}

// Shell runs commands with `sh -c`.
type Shell struct {
	// Path to the shell binary, defaults to "sh".
	Path string
	// Timeout bounds each command when non-zero. Zero means no timeout.
	Timeout time.Duration
	// Env is appended to the current environment.
	Env []string
}

// NewShell creates a shell executor without a timeout.
func NewShell() *Shell {
	return &Shell{Path: "sh"}
}

// Run executes the command and waits for it to finish.
func (s *Shell) Run(ctx context.Context, command string) (string, int) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	shell := s.Path
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	// Grandchildren may keep stdout open after the shell is killed.
	cmd.WaitDelay = 500 * time.Millisecond
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logger.Debug("command finished", "cmd", command, "took", time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			logger.Debugf("command %q cancelled: %v", command, ctx.Err())
			return stdout.String(), -1
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				logger.Debugf("command %q stderr: %s", command, msg)
			}
			return stdout.String(), exitErr.ExitCode()
		}
		logger.Debugf("command %q failed to start: %v", command, err)
		return stdout.String(), -1
	}

	return stdout.String(), 0
}

// Quote wraps s in double quotes for use as a single shell word.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	return `"` + r.Replace(s) + `"`
}
