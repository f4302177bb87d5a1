// Package dialog opens native file choosers through zenity.
package dialog

import (
	"context"
	"os"
	"strings"

	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
)

// Picker shows zenity file dialogs.
type Picker struct {
	exec executor.Executor
}

// New creates a picker that runs zenity through exec.
func New(exec executor.Executor) *Picker {
	return &Picker{exec: exec}
}

// Open asks for an existing file. defaultPath is only offered when it
// exists. Extensions in filters look like ".png". It returns "" when the
// dialog is cancelled or the chosen file does not exist.
func (p *Picker) Open(ctx context.Context, title, defaultPath string, filters []string) string {
	var b strings.Builder
	b.WriteString("zenity --file-selection --title=")
	b.WriteString(executor.Quote(title))

	if defaultPath != "" && exists(defaultPath) {
		b.WriteString(" --filename=")
		b.WriteString(executor.Quote(defaultPath))
	}
	if len(filters) > 0 {
		b.WriteString(" --file-filter=")
		b.WriteString(executor.Quote("Image files " + globs(filters) + "|All files *"))
	}

	path := p.run(ctx, b.String())
	if path != "" && !exists(path) {
		logger.Debugf("dialog: selected file %s does not exist", path)
		return ""
	}
	return path
}

// Save asks for a destination path. The file need not exist.
func (p *Picker) Save(ctx context.Context, title, defaultPath string, filters []string) string {
	var b strings.Builder
	b.WriteString("zenity --file-selection --save --title=")
	b.WriteString(executor.Quote(title))

	if defaultPath != "" {
		b.WriteString(" --filename=")
		b.WriteString(executor.Quote(defaultPath))
	}
	if len(filters) > 0 {
		b.WriteString(" --file-filter=")
		b.WriteString(executor.Quote(globs(filters) + "|All files *"))
	}

	return p.run(ctx, b.String())
}

func (p *Picker) run(ctx context.Context, command string) string {
	output, code := p.exec.Run(ctx, command)
	if code != 0 {
		// zenity exits 1 on cancel
		logger.Debug("dialog closed without selection", "exit", code)
		return ""
	}
	return strings.TrimRight(output, "\r\n")
}

func globs(filters []string) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = "*" + f
	}
	return strings.Join(parts, " ")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
