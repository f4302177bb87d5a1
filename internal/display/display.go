// Package display detects the monitor topology reported by the compositor
// or the X server and exposes lookups over the detected displays.
package display

import (
	"fmt"
	"strings"
)

// Display is one detected monitor.
type Display struct {
	ID          int
	Name        string
	Description string
	Width       int
	Height      int
	RefreshRate int
	X           int // Position in the global coordinate space
	Y           int
	Primary     bool
	Active      bool
	Connector   string
	Scale       float64
}

// Bounds returns the display's boundaries
func (d Display) Bounds() (x1, y1, x2, y2 int) {
	return d.X, d.Y, d.X + d.Width, d.Y + d.Height
}

// Contains checks if a point is within this display
func (d Display) Contains(x, y int) bool {
	return x >= d.X && x < d.X+d.Width && y >= d.Y && y < d.Y+d.Height
}

// IsZero reports whether d is the placeholder returned by failed lookups.
func (d Display) IsZero() bool {
	return d.Name == "" && d.Width == 0 && d.Height == 0
}

func (d Display) String() string {
	return d.Description
}

// newDisplay builds an active display record. The primary flag follows the
// origin rule: a display anchored at (0,0) is primary.
func newDisplay(name string, width, height, refresh, x, y int) Display {
	return Display{
		Name:        name,
		Description: fmt.Sprintf("%s (%dx%d@%dHz)", name, width, height, refresh),
		Width:       width,
		Height:      height,
		RefreshRate: refresh,
		X:           x,
		Y:           y,
		Primary:     x == 0 && y == 0,
		Active:      true,
		Connector:   connectorFor(name),
		Scale:       1.0,
	}
}

// fallbackDisplay is used when no detection method yields anything.
func fallbackDisplay() Display {
	return newDisplay("DP-1", 1920, 1080, 60, 0, 0)
}

// connectorFor derives the connector category from the output name.
func connectorFor(name string) string {
	switch {
	case strings.Contains(name, "DP-"):
		return "DisplayPort"
	case strings.Contains(name, "HDMI-"):
		return "HDMI"
	case strings.Contains(name, "DVI-"):
		return "DVI"
	default:
		return "Unknown"
	}
}

// VirtualSize returns the size of the bounding box around all displays.
func VirtualSize(displays []Display) (width, height int) {
	if len(displays) == 0 {
		return 0, 0
	}
	minX, minY, maxX, maxY := displays[0].Bounds()
	for _, d := range displays[1:] {
		x1, y1, x2, y2 := d.Bounds()
		minX = min(minX, x1)
		minY = min(minY, y1)
		maxX = max(maxX, x2)
		maxY = max(maxY, y2)
	}
	return maxX - minX, maxY - minY
}
