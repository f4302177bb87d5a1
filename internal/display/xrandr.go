package display

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
)

const xrandrMonitorsCmd = "xrandr --listmonitors"

// xrandr --listmonitors:
//
//	Monitors: 2
//	 0: +*DP-1 2560/597x1440/336+0+0  DP-1
//	 1: +HDMI-A-1 1920/509x1080/286+2560+0  HDMI-A-1
var xrandrMonitorRE = regexp.MustCompile(`^\s*\d+:\s+\+?\*?(\S+)\s+(\d+)/(\d+)x(\d+)/(\d+)\+(-?\d+)\+(-?\d+)\s+(\S+)`)

// xrandrSource runs xrandr against the legacy X server.
type xrandrSource struct {
	exec executor.Executor
}

func (x *xrandrSource) Name() string { return "xrandr" }

func (x *xrandrSource) Detect(ctx context.Context) ([]Display, error) {
	output, code := x.exec.Run(ctx, xrandrMonitorsCmd)
	if code != 0 || strings.TrimSpace(output) == "" {
		logger.Debug("xrandr returned nothing", "exit", code)
		return nil, newError(XLegacyNotAvailable, "xrandr is not available")
	}

	displays := parseXrandrOutput(output)
	if len(displays) == 0 {
		return nil, newError(ParseError, "failed to parse xrandr output")
	}
	return displays, nil
}

// parseXrandrOutput extracts displays from `xrandr --listmonitors` text.
// Ids are assigned in parse order; the listing carries no refresh rate.
func parseXrandrOutput(output string) []Display {
	var displays []Display
	for _, line := range strings.Split(output, "\n") {
		m := xrandrMonitorRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		width, _ := strconv.Atoi(m[2])
		height, _ := strconv.Atoi(m[4])
		x, _ := strconv.Atoi(m[6])
		y, _ := strconv.Atoi(m[7])

		d := newDisplay(m[1], width, height, 60, x, y)
		d.ID = len(displays)
		displays = append(displays, d)
	}
	return displays
}
