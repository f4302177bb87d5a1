package ui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/wayper/internal/display"
	"github.com/bnema/wayper/internal/logger"
)

// Applier sets a wallpaper on a display.
type Applier interface {
	Assign(ctx context.Context, path string, displayID int) error
}

// Redetector refreshes the display list between slides.
type Redetector interface {
	Refresh(ctx context.Context) error
	Lookup(id int) (display.Display, bool)
}

// SlideshowConfig configures a slideshow run.
type SlideshowConfig struct {
	DisplayID int
	Interval  time.Duration
	Images    []string
	// Detector is refreshed before every slide when set (hotplug).
	Detector Redetector
	// Updates delivers new library listings (live sync). May be nil.
	Updates <-chan []string
	// OnApplied runs on the UI goroutine after each successful slide.
	OnApplied func(displayID int, path string)
}

type slideTickMsg struct{ seq int }

type slideAppliedMsg struct {
	path string
	err  error
}

type libraryUpdateMsg struct {
	images []string
	ok     bool
}

// Slideshow rotates random library images on one display.
type Slideshow struct {
	base    *BaseUI
	cfg     SlideshowConfig
	applier Applier
	status  *StatusBar

	images   []string
	current  string
	seq      int
	paused   bool
	applying bool
	applied  int
	lastErr  error

	// intN picks an index in [0,n)
	intN func(n int) int
}

// NewSlideshow creates the slideshow model.
func NewSlideshow(applier Applier, cfg SlideshowConfig) *Slideshow {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	return &Slideshow{
		cfg:     cfg,
		applier: applier,
		status:  NewStatusBar("wayper · SLIDESHOW"),
		images:  cfg.Images,
		intN:    rand.IntN,
	}
}

// SetBase implements UIModel
func (m *Slideshow) SetBase(base *BaseUI) {
	m.base = base
}

// OnShutdown implements UIModel
func (m *Slideshow) OnShutdown() error {
	logger.Infof("Slideshow stopped after %d wallpaper(s)", m.applied)
	return nil
}

// Init implements tea.Model
func (m *Slideshow) Init() tea.Cmd {
	return tea.Batch(m.status.Init(), m.next(), m.waitLibrary())
}

// Update implements tea.Model
func (m *Slideshow) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.base != nil {
		if cmd := m.base.BaseUpdate(msg); cmd != nil {
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, m.quit()
		case "n":
			return m, m.next()
		case " ", "p":
			m.paused = !m.paused
			if m.paused {
				m.seq++
				m.log("info", "Paused")
				return m, nil
			}
			m.log("info", "Resumed")
			return m, m.schedule()
		}

	case tea.WindowSizeMsg:
		m.status.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.status, cmd = m.status.Update(msg)
		return m, cmd

	case slideTickMsg:
		if msg.seq != m.seq || m.paused {
			return m, nil
		}
		return m, m.next()

	case slideAppliedMsg:
		m.applying = false
		m.lastErr = msg.err
		if msg.err != nil {
			m.log("error", msg.err.Error())
		} else {
			m.current = msg.path
			m.applied++
			m.log("info", "Applied "+filepath.Base(msg.path))
			if m.cfg.OnApplied != nil {
				m.cfg.OnApplied(m.cfg.DisplayID, msg.path)
			}
		}
		if m.paused {
			return m, nil
		}
		return m, m.schedule()

	case libraryUpdateMsg:
		if !msg.ok {
			return m, nil
		}
		m.images = msg.images
		m.log("info", fmt.Sprintf("Library updated: %d image(s)", len(msg.images)))
		// first images after starting with an empty library
		if m.current == "" && !m.applying && !m.paused && len(m.images) > 0 {
			return m, tea.Batch(m.next(), m.waitLibrary())
		}
		return m, m.waitLibrary()
	}

	return m, nil
}

// next picks an image and returns the command applying it.
func (m *Slideshow) next() tea.Cmd {
	m.seq++
	if len(m.images) == 0 {
		m.lastErr = fmt.Errorf("no images in wallpaper directories")
		return nil
	}

	path := m.pick()
	m.applying = true

	ctx := m.context()
	applier, detector, id := m.applier, m.cfg.Detector, m.cfg.DisplayID
	return func() tea.Msg {
		if detector != nil {
			if err := detector.Refresh(ctx); err != nil {
				return slideAppliedMsg{path: path, err: err}
			}
			if _, ok := detector.Lookup(id); !ok {
				return slideAppliedMsg{path: path, err: fmt.Errorf("display %d is not connected", id)}
			}
		}
		return slideAppliedMsg{path: path, err: applier.Assign(ctx, path, id)}
	}
}

// pick avoids showing the same image twice in a row.
func (m *Slideshow) pick() string {
	i := m.intN(len(m.images))
	if len(m.images) > 1 && m.images[i] == m.current {
		i = (i + 1) % len(m.images)
	}
	return m.images[i]
}

func (m *Slideshow) schedule() tea.Cmd {
	m.seq++
	seq := m.seq
	return tea.Tick(m.cfg.Interval, func(time.Time) tea.Msg {
		return slideTickMsg{seq: seq}
	})
}

func (m *Slideshow) waitLibrary() tea.Cmd {
	if m.cfg.Updates == nil {
		return nil
	}
	updates := m.cfg.Updates
	return func() tea.Msg {
		images, ok := <-updates
		return libraryUpdateMsg{images: images, ok: ok}
	}
}

func (m *Slideshow) quit() tea.Cmd {
	if m.base != nil {
		return m.base.InitiateShutdown()
	}
	return tea.Quit
}

func (m *Slideshow) context() context.Context {
	if m.base != nil {
		return m.base.Context()
	}
	return context.Background()
}

func (m *Slideshow) log(level, msg string) {
	logger.Debug("slideshow: "+msg, "display", m.cfg.DisplayID)
	if m.base != nil {
		m.base.AddLogEntry(level, msg)
	}
}

// View implements tea.Model
func (m *Slideshow) View() string {
	var b strings.Builder

	switch {
	case m.applying:
		m.status.Status, m.status.Active, m.status.ShowSpinner = "Applying", true, true
	case m.paused:
		m.status.Status, m.status.Active, m.status.ShowSpinner = "Paused", false, false
	default:
		m.status.Status, m.status.Active, m.status.ShowSpinner = "Running", true, false
	}
	b.WriteString(m.status.View())
	b.WriteString("\n\n")

	current := "none yet"
	if m.current != "" {
		current = filepath.Base(m.current)
	}
	panel := InfoPanel{
		Title: "Now showing",
		Content: []string{
			FormatKeyValue("Display", 9, m.cfg.DisplayID),
			FormatKeyValue("Image", 9, current),
			FormatKeyValue("Library", 9, fmt.Sprintf("%d image(s)", len(m.images))),
			FormatKeyValue("Interval", 9, m.cfg.Interval),
			FormatKeyValue("Shown", 9, m.applied),
		},
	}
	b.WriteString(panel.View())
	b.WriteString("\n")

	if m.lastErr != nil {
		msg := Message{Type: MessageError, Content: m.lastErr.Error()}
		b.WriteString(msg.View())
		b.WriteString("\n")
	}

	if m.base != nil {
		logs := m.base.GetLogs()
		if len(logs) > 5 {
			logs = logs[len(logs)-5:]
		}
		for _, entry := range logs {
			b.WriteString(FormatLogEntry(entry))
			b.WriteString("\n")
		}
	}

	help := ControlsHelp{Controls: []Control{
		{Key: "n", Desc: "next"},
		{Key: "space", Desc: "pause"},
		{Key: "q", Desc: "quit"},
	}}
	b.WriteString("\n")
	b.WriteString(help.View())
	return b.String()
}
