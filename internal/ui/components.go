package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/wayper/internal/display"
	"github.com/bnema/wayper/internal/wallpaper"
)

// StatusBar represents a reusable status bar component
type StatusBar struct {
	Width       int
	Title       string
	Status      string
	Active      bool
	ShowSpinner bool
	spinner     spinner.Model
}

// NewStatusBar creates a new status bar
func NewStatusBar(title string) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: SpinnerDot,
		FPS:    time.Second / 10,
	}
	s.Style = SpinnerStyle

	return &StatusBar{
		Title:   title,
		spinner: s,
	}
}

// Init implements tea.Model
func (s *StatusBar) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements tea.Model
func (s *StatusBar) Update(msg tea.Msg) (*StatusBar, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case tea.WindowSizeMsg:
		s.Width = msg.Width
	}
	return s, nil
}

// View renders the status bar
func (s *StatusBar) View() string {
	title := TitleStyle.Render(s.Title)

	status := s.Status
	if s.ShowSpinner {
		status = s.spinner.View() + " " + s.Status
	}
	statusFormatted := FormatStatus(s.Active, status)

	gap := max(s.Width-lipgloss.Width(title)-lipgloss.Width(statusFormatted)-2, 1)
	return title + strings.Repeat(" ", gap) + statusFormatted
}

// InfoPanel represents a panel with information
type InfoPanel struct {
	Title   string
	Content []string
	Width   int
}

// View renders the info panel
func (p *InfoPanel) View() string {
	var b strings.Builder

	if p.Title != "" {
		b.WriteString(SubheaderStyle.Render(p.Title))
		b.WriteString("\n")
	}
	for i, line := range p.Content {
		b.WriteString(TextStyle.Render(line))
		if i < len(p.Content)-1 {
			b.WriteString("\n")
		}
	}

	style := BoxStyle
	if p.Width > 0 {
		style = style.Width(p.Width)
	}
	return style.Render(b.String())
}

// DisplayInfo lists detected displays with their geometry
type DisplayInfo struct {
	Displays []display.Display
	Width    int
}

// View renders the display info
func (m *DisplayInfo) View() string {
	var b strings.Builder

	b.WriteString(SubheaderStyle.Render(fmt.Sprintf("Detected %d display(s):", len(m.Displays))))
	b.WriteString("\n\n")

	for i, d := range m.Displays {
		name := d.Name
		if d.Primary {
			name += " " + InfoStyle.Render("(primary)")
		}

		b.WriteString(fmt.Sprintf("%d. %s\n", d.ID, BoldStyle.Render(name)))
		b.WriteString(fmt.Sprintf("   %s at %s  %s\n",
			TextStyle.Render(fmt.Sprintf("%dx%d@%dHz", d.Width, d.Height, d.RefreshRate)),
			SubtleStyle.Render(fmt.Sprintf("%d,%d", d.X, d.Y)),
			MutedStyle.Render(d.Connector)))

		if i < len(m.Displays)-1 {
			b.WriteString("\n")
		}
	}

	style := BoxStyle
	if m.Width > 0 {
		style = style.Width(m.Width)
	}
	return style.Render(b.String())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.PaddingRight(2)
			}
			return TableCellStyle
		})
}

// DisplayTable renders displays as a table.
func DisplayTable(displays []display.Display) string {
	t := newTable("ID", "NAME", "RESOLUTION", "REFRESH", "POSITION", "CONNECTOR", "PRIMARY")
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = IconSuccess
		}
		t.Row(
			strconv.Itoa(d.ID),
			d.Name,
			fmt.Sprintf("%dx%d", d.Width, d.Height),
			fmt.Sprintf("%dHz", d.RefreshRate),
			fmt.Sprintf("%d,%d", d.X, d.Y),
			d.Connector,
			primary,
		)
	}
	return t.Render()
}

// AssignmentTable renders wallpaper assignments. names maps display ids to
// output names and may be nil.
func AssignmentTable(assignments []wallpaper.Assignment, names map[int]string) string {
	if len(assignments) == 0 {
		return MutedStyle.Render("No wallpapers set")
	}

	t := newTable("DISPLAY", "MODE", "SIZE", "FORMAT", "FILE")
	for _, a := range assignments {
		label := strconv.Itoa(a.DisplayID)
		if name := names[a.DisplayID]; name != "" {
			label += " (" + name + ")"
		}
		t.Row(
			label,
			a.Mode.String(),
			fmt.Sprintf("%dx%d", a.Width, a.Height),
			a.Format,
			filepath.Base(a.Path),
		)
	}
	return t.Render()
}

// PlacementLines describes where an image lands on a display.
func PlacementLines(p wallpaper.Placement) []string {
	lines := []string{FormatKeyValue("Mode", 9, p.Mode)}
	switch p.Mode {
	case wallpaper.Stretch:
		lines = append(lines, FormatKeyValue("Scale", 9, fmt.Sprintf("%.4f x %.4f", p.ScaleX, p.ScaleY)))
	case wallpaper.Scale:
		lines = append(lines, FormatKeyValue("Scale", 9, fmt.Sprintf("%.4f", p.ScaleX)))
	}
	lines = append(lines,
		FormatKeyValue("Size", 9, fmt.Sprintf("%dx%d", p.Width, p.Height)),
		FormatKeyValue("Offset", 9, fmt.Sprintf("%d,%d", p.OffsetX, p.OffsetY)),
	)
	if p.Mode == wallpaper.Tile {
		lines = append(lines, FormatKeyValue("Tiles", 9, fmt.Sprintf("%d x %d", p.TilesX, p.TilesY)))
	}
	return lines
}

// ControlsHelp displays keyboard controls
type ControlsHelp struct {
	Controls []Control
}

// Control represents a keyboard control
type Control struct {
	Key  string
	Desc string
}

// View renders the controls on one line
func (c *ControlsHelp) View() string {
	parts := make([]string, len(c.Controls))
	for i, ctrl := range c.Controls {
		parts[i] = ControlKeyStyle.Render("["+ctrl.Key+"]") + " " + SubtleStyle.Render(ctrl.Desc)
	}
	return strings.Join(parts, "  ")
}

// ProgressIndicator shows progress
type ProgressIndicator struct {
	Label          string
	Current        int
	Total          int
	Width          int
	ShowPercentage bool
}

// View renders the progress indicator
func (p *ProgressIndicator) View() string {
	percentage := 1.0
	if p.Total > 0 {
		percentage = min(float64(p.Current)/float64(p.Total), 1.0)
	}

	barWidth := max(p.Width-len(p.Label)-10, 10)
	filled := int(float64(barWidth) * percentage)
	empty := barWidth - filled

	bar := SuccessStyle.Render(strings.Repeat("█", filled)) +
		MutedStyle.Render(strings.Repeat("░", empty))

	if p.ShowPercentage {
		return fmt.Sprintf("%s %s %3.0f%%", TextStyle.Render(p.Label), bar, percentage*100)
	}
	return fmt.Sprintf("%s %s", TextStyle.Render(p.Label), bar)
}

// Message displays a styled message
type Message struct {
	Type    MessageType
	Content string
}

// MessageType represents the type of message
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// View renders the message
func (m *Message) View() string {
	var style lipgloss.Style
	var prefix string

	switch m.Type {
	case MessageSuccess:
		style = SuccessStyle
		prefix = IconSuccess + " "
	case MessageWarning:
		style = WarningStyle
		prefix = IconWarning + " "
	case MessageError:
		style = ErrorStyle
		prefix = IconError + " "
	default:
		style = InfoStyle
		prefix = IconInfo + " "
	}

	return style.Render(prefix + m.Content)
}
