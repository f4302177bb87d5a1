package display

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
)

const hyprlandMonitorsCmd = "hyprctl monitors"

var (
	// Monitor DP-1 (ID 0): 2560x1440 @ 165.001Hz at 0x0
	hyprSingleLineRE = regexp.MustCompile(`Monitor (\S+) \(ID (\d+)\): (\d+)x(\d+) @ ([\d.]+)Hz at (-?\d+)x(-?\d+)`)

	// Real hyprctl prints the mode on the line after the header:
	// Monitor DP-1 (ID 0):
	//	2560x1440@164.99899 at 0x0
	hyprHeaderRE = regexp.MustCompile(`^Monitor (\S+) \(ID (\d+)\):\s*$`)
	hyprModeRE   = regexp.MustCompile(`^\s*(\d+)x(\d+)\s*@\s*([\d.]+)(?:Hz)? at (-?\d+)x(-?\d+)`)
)

// hyprlandSource queries Hyprland through hyprctl.
type hyprlandSource struct {
	exec executor.Executor
}

func (h *hyprlandSource) Name() string { return "hyprland" }

func (h *hyprlandSource) Detect(ctx context.Context) ([]Display, error) {
	output, code := h.exec.Run(ctx, hyprlandMonitorsCmd)
	if code != 0 || strings.TrimSpace(output) == "" {
		logger.Debug("hyprctl returned nothing", "exit", code)
		return nil, newError(CompositorNotRunning,
			"failed to query Hyprland displays - Hyprland may not be running")
	}

	displays := parseHyprlandOutput(output)
	if len(displays) == 0 {
		return nil, newError(ParseError, "failed to parse Hyprland display output")
	}
	return displays, nil
}

// parseHyprlandOutput extracts displays from `hyprctl monitors` text.
// Lines that match neither layout are skipped.
func parseHyprlandOutput(output string) []Display {
	var displays []Display
	lines := strings.Split(output, "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := hyprSingleLineRE.FindStringSubmatch(line); m != nil {
			displays = append(displays, hyprDisplay(m[1], m[2], m[3], m[4], m[5], m[6], m[7]))
			continue
		}

		h := hyprHeaderRE.FindStringSubmatch(strings.TrimSpace(line))
		if h == nil || i+1 >= len(lines) {
			continue
		}
		if m := hyprModeRE.FindStringSubmatch(lines[i+1]); m != nil {
			displays = append(displays, hyprDisplay(h[1], h[2], m[1], m[2], m[3], m[4], m[5]))
			i++
		}
	}

	return displays
}

func hyprDisplay(name, id, w, h, rate, x, y string) Display {
	width, _ := strconv.Atoi(w)
	height, _ := strconv.Atoi(h)
	refresh, _ := strconv.ParseFloat(rate, 64)
	px, _ := strconv.Atoi(x)
	py, _ := strconv.Atoi(y)

	d := newDisplay(name, width, height, int(refresh), px, py)
	d.ID, _ = strconv.Atoi(id)
	return d
}
