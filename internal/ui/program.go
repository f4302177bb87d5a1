package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/wayper/internal/logger"
)

// ProgramConfig holds configuration for running a UI program
type ProgramConfig struct {
	ShutdownConfig ShutdownConfig
	AltScreen      bool
	LogFile        string
	// Extra options, mostly for tests (tea.WithInput, tea.WithOutput)
	Options []tea.ProgramOption
}

// DefaultProgramConfig returns default configuration
func DefaultProgramConfig() ProgramConfig {
	return ProgramConfig{
		ShutdownConfig: DefaultShutdownConfig(),
	}
}

// UIModel interface that all UI models must implement
type UIModel interface {
	tea.Model
	// SetBase allows the model to store reference to base UI
	SetBase(base *BaseUI)
	// OnShutdown is called during shutdown
	OnShutdown() error
}

// ProgramRunner manages the lifecycle of a Bubble Tea program with proper shutdown
type ProgramRunner struct {
	config  ProgramConfig
	base    *BaseUI
	program *tea.Program
	done    chan struct{} // Signals when the program has exited
}

// NewProgramRunner creates a new program runner
func NewProgramRunner(config ProgramConfig) *ProgramRunner {
	return &ProgramRunner{
		config: config,
		done:   make(chan struct{}),
	}
}

// Run starts the UI program with the given model
func (r *ProgramRunner) Run(ctx context.Context, model UIModel) error {
	defer close(r.done)

	r.base = NewBaseUI(ctx, r.config.ShutdownConfig)
	r.base.SetOnShutdown(model.OnShutdown)
	model.SetBase(r.base)

	var opts []tea.ProgramOption
	if r.config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if r.config.LogFile != "" {
		f, err := os.OpenFile(r.config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		opts = append(opts, tea.WithOutput(f))
	}
	opts = append(opts, r.config.Options...)

	r.program = tea.NewProgram(model, opts...)

	errCh := make(chan error, 1)
	go func() {
		_, err := r.program.Run()
		errCh <- err
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-r.base.Context().Done():
		r.program.Quit()

		select {
		case runErr = <-errCh:
		case <-time.After(2 * time.Second):
			r.program.Kill()
			<-errCh
		}
	}

	// Bubble Tea has exited, release the base context and run the shutdown callback
	r.base.cancel()
	if r.base.onShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownConfig.GracePeriod)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- r.base.onShutdown()
		}()

		select {
		case err := <-done:
			if err != nil {
				logger.Error("Shutdown callback error", "error", err)
			}
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown callback timed out")
		}
	}

	if runErr == tea.ErrProgramKilled {
		return nil
	}
	return runErr
}

// Send sends a message to the running program
func (r *ProgramRunner) Send(msg tea.Msg) {
	if r.program != nil {
		r.program.Send(msg)
	}
}

// Quit sends a quit message to the program
func (r *ProgramRunner) Quit() {
	if r.program != nil {
		r.program.Quit()
	}
}

// Done returns a channel that's closed when the program exits
func (r *ProgramRunner) Done() <-chan struct{} {
	return r.done
}
