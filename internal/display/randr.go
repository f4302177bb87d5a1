package display

import (
	"context"
	"io"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/bnema/wayper/internal/logger"
)

// randrSource talks RandR to the X server (or XWayland) directly instead of
// shelling out to xrandr.
type randrSource struct {
	// display overrides $DISPLAY when set.
	display string
}

func (r *randrSource) Name() string { return "randr" }

func (r *randrSource) Detect(ctx context.Context) ([]Display, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// xgb logs every protocol hiccup to stderr
	xgb.Logger.SetOutput(io.Discard)

	conn, err := xgb.NewConnDisplay(r.display)
	if err != nil {
		logger.Debugf("randr: cannot connect to X: %v", err)
		return nil, newError(XLegacyNotAvailable, "X server is not available")
	}
	defer conn.Close()

	if err := randr.Init(conn); err != nil {
		return nil, newError(XLegacyNotAvailable, "RandR extension is not available")
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root
	resources, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, newError(CommandExecutionFailed, "failed to query RandR screen resources")
	}

	modes := make(map[randr.Mode]randr.ModeInfo, len(resources.Modes))
	for _, m := range resources.Modes {
		modes[randr.Mode(m.Id)] = m
	}

	var displays []Display
	for _, output := range resources.Outputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := randr.GetOutputInfo(conn, output, resources.ConfigTimestamp).Reply()
		if err != nil {
			logger.Debugf("randr: output %d: %v", output, err)
			continue
		}
		// Disconnected outputs and outputs without a CRTC are not lit
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}

		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil || crtc.Width == 0 || crtc.Height == 0 {
			continue
		}

		d := newDisplay(string(info.Name), int(crtc.Width), int(crtc.Height),
			refreshFromMode(modes[crtc.Mode]), int(crtc.X), int(crtc.Y))
		d.ID = len(displays)
		displays = append(displays, d)
	}

	if len(displays) == 0 {
		return nil, newError(ParseError, "RandR reported no active outputs")
	}
	return displays, nil
}

// refreshFromMode derives the vertical refresh in whole Hz from mode timings.
func refreshFromMode(m randr.ModeInfo) int {
	total := uint64(m.Htotal) * uint64(m.Vtotal)
	if m.DotClock == 0 || total == 0 {
		return 60
	}
	return int(uint64(m.DotClock) / total)
}
