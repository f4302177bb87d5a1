package display

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
)

const wlrRandrCmd = "wlr-randr --json"

// wlrOutput is one entry of `wlr-randr --json`.
type wlrOutput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
	Modes       []struct {
		Width   int     `json:"width"`
		Height  int     `json:"height"`
		Refresh float64 `json:"refresh"`
		Current bool    `json:"current"`
	} `json:"modes"`
	Position struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"position"`
	Scale float64 `json:"scale"`
}

// wlrRandrSource asks a wlroots compositor through wlr-randr. It stands in
// for the X server query on sway and other non-Hyprland sessions.
type wlrRandrSource struct {
	exec executor.Executor
}

func (w *wlrRandrSource) Name() string { return "wlr-randr" }

func (w *wlrRandrSource) Detect(ctx context.Context) ([]Display, error) {
	output, code := w.exec.Run(ctx, wlrRandrCmd)
	if code != 0 || strings.TrimSpace(output) == "" {
		logger.Debug("wlr-randr returned nothing", "exit", code)
		return nil, newError(XLegacyNotAvailable, "wlr-randr is not available")
	}

	displays, err := parseWlrRandrOutput(output)
	if err != nil {
		return nil, &Error{Code: ParseError, Msg: "failed to parse wlr-randr output", Err: err}
	}
	if len(displays) == 0 {
		return nil, newError(ParseError, "wlr-randr reported no enabled outputs")
	}
	return displays, nil
}

// parseWlrRandrOutput keeps enabled outputs that have a current mode. Ids
// follow the listing order of the enabled outputs.
func parseWlrRandrOutput(output string) ([]Display, error) {
	var outputs []wlrOutput
	if err := json.Unmarshal([]byte(output), &outputs); err != nil {
		return nil, err
	}

	var displays []Display
	for _, o := range outputs {
		if !o.Enabled {
			continue
		}
		found := false
		for _, m := range o.Modes {
			if !m.Current {
				continue
			}
			found = true
			if m.Width == 0 || m.Height == 0 {
				logger.Warnf("Skipping monitor %s with invalid dimensions: %dx%d", o.Name, m.Width, m.Height)
				break
			}
			d := newDisplay(o.Name, m.Width, m.Height, int(m.Refresh), o.Position.X, o.Position.Y)
			d.ID = len(displays)
			displays = append(displays, d)
			break
		}
		if !found {
			logger.Debugf("wlr-randr: output %s has no current mode", o.Name)
		}
	}
	return displays, nil
}
