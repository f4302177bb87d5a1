package wallpaper

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode controls how an image is laid out on a display.
type Mode int

const (
	Stretch Mode = iota
	Center
	Tile
	Scale
)

// DefaultMode is used for new assignments.
const DefaultMode = Scale

// Modes lists every mode in declaration order.
var Modes = []Mode{Stretch, Center, Tile, Scale}

func (m Mode) String() string {
	switch m {
	case Stretch:
		return "Stretch"
	case Center:
		return "Center"
	case Tile:
		return "Tile"
	case Scale:
		return "Scale"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m >= Stretch && m <= Scale
}

// ParseMode accepts a mode name (any case) or its integer value.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Mode(n).Valid() {
		return Mode(n), nil
	}
	return DefaultMode, fmt.Errorf("unknown wallpaper mode %q", s)
}
