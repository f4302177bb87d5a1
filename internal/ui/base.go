package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ShutdownConfig holds configuration for graceful shutdown
type ShutdownConfig struct {
	GracePeriod time.Duration // Time to wait for graceful shutdown
}

// DefaultShutdownConfig returns sensible defaults
func DefaultShutdownConfig() ShutdownConfig {
	return ShutdownConfig{
		GracePeriod: 5 * time.Second,
	}
}

// LogEntry represents a single log entry with timestamp and content
type LogEntry struct {
	Timestamp time.Time
	Level     string
	Message   string
}

// BaseUI provides common functionality for all UI models
type BaseUI struct {
	// Context and shutdown
	ctx            context.Context
	cancel         context.CancelFunc
	shutdownConfig ShutdownConfig
	shutdownOnce   sync.Once
	isShuttingDown bool
	shutdownMu     sync.RWMutex

	// Window dimensions
	windowWidth  int
	windowHeight int

	// Logging
	logBuffer   []LogEntry
	maxLogLines int
	logMu       sync.RWMutex

	// Callbacks for lifecycle events
	onShutdown func() error // Called during shutdown
}

// NewBaseUI creates a new base UI with context and shutdown handling
func NewBaseUI(ctx context.Context, cfg ShutdownConfig) *BaseUI {
	ctx, cancel := context.WithCancel(ctx)

	base := &BaseUI{
		ctx:            ctx,
		cancel:         cancel,
		shutdownConfig: cfg,
		maxLogLines:    100,
		logBuffer:      make([]LogEntry, 0),
	}

	go base.handleSignals()

	return base
}

// handleSignals manages OS signals for graceful shutdown
func (b *BaseUI) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		b.InitiateShutdown()
	case <-b.ctx.Done():
	}
}

// InitiateShutdown starts the shutdown process
func (b *BaseUI) InitiateShutdown() tea.Cmd {
	var cmd tea.Cmd

	b.shutdownOnce.Do(func() {
		b.shutdownMu.Lock()
		b.isShuttingDown = true
		b.shutdownMu.Unlock()

		b.AddLogEntry("info", "Shutting down...")

		// Cancel main context to signal shutdown
		b.cancel()

		cmd = tea.Quit
	})

	return cmd
}

// IsShuttingDown returns true if shutdown has been initiated
func (b *BaseUI) IsShuttingDown() bool {
	b.shutdownMu.RLock()
	defer b.shutdownMu.RUnlock()
	return b.isShuttingDown
}

// Context returns the UI's context
func (b *BaseUI) Context() context.Context {
	return b.ctx
}

// SetOnShutdown sets the shutdown callback
func (b *BaseUI) SetOnShutdown(fn func() error) {
	b.onShutdown = fn
}

// AddLogEntry adds a log entry with thread-safe access
func (b *BaseUI) AddLogEntry(level, message string) {
	b.logMu.Lock()
	defer b.logMu.Unlock()

	b.logBuffer = append(b.logBuffer, LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	})

	if len(b.logBuffer) > b.maxLogLines {
		b.logBuffer = b.logBuffer[len(b.logBuffer)-b.maxLogLines:]
	}
}

// GetLogs returns a copy of the log buffer
func (b *BaseUI) GetLogs() []LogEntry {
	b.logMu.RLock()
	defer b.logMu.RUnlock()

	logs := make([]LogEntry, len(b.logBuffer))
	copy(logs, b.logBuffer)
	return logs
}

// UpdateWindowSize updates the window dimensions
func (b *BaseUI) UpdateWindowSize(width, height int) {
	b.windowWidth = width
	b.windowHeight = height
}

// GetWindowSize returns the current window dimensions
func (b *BaseUI) GetWindowSize() (width, height int) {
	return b.windowWidth, b.windowHeight
}

// BaseUpdate handles common update logic
func (b *BaseUI) BaseUpdate(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.UpdateWindowSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return b.InitiateShutdown()
		}
	}
	return nil
}

// FormatLogEntry formats a log entry for display
func FormatLogEntry(entry LogEntry) string {
	levelStyle := lipgloss.NewStyle().Bold(true)
	var levelText string

	switch entry.Level {
	case "ERROR", "error":
		levelStyle = levelStyle.Foreground(ColorError)
		levelText = "ERROR"
	case "WARN", "warn", "warning":
		levelStyle = levelStyle.Foreground(ColorWarning)
		levelText = "WARN "
	case "INFO", "info":
		levelStyle = levelStyle.Foreground(lipgloss.Color("42"))
		levelText = "INFO "
	case "DEBUG", "debug":
		levelStyle = levelStyle.Foreground(lipgloss.Color("245"))
		levelText = "DEBUG"
	default:
		levelStyle = levelStyle.Foreground(ColorHighlight)
		levelText = fmt.Sprintf("%-5s", entry.Level)
	}

	timestamp := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(entry.Timestamp.Format("15:04:05"))
	return fmt.Sprintf("%s %s %s", timestamp, levelStyle.Render(levelText), entry.Message)
}
