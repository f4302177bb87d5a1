package wallpaper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
)

const (
	hyprpaperUnloadAll = "hyprctl hyprpaper unload all"
	hyprMonitorsJSON   = "hyprctl monitors -j"
)

// NameResolver maps a display id to the output name hyprpaper expects.
type NameResolver interface {
	DisplayName(ctx context.Context, displayID int) string
}

// NameResolverFunc adapts a function to NameResolver.
type NameResolverFunc func(ctx context.Context, displayID int) string

func (f NameResolverFunc) DisplayName(ctx context.Context, displayID int) string {
	return f(ctx, displayID)
}

// hyprctlResolver asks Hyprland for its monitor list in JSON and picks the
// entry at the display's position.
type hyprctlResolver struct {
	exec executor.Executor
}

func (r hyprctlResolver) DisplayName(ctx context.Context, displayID int) string {
	output, code := r.exec.Run(ctx, hyprMonitorsJSON)
	if code == 0 {
		var monitors []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(output), &monitors); err == nil {
			if displayID >= 0 && displayID < len(monitors) && monitors[displayID].Name != "" {
				return monitors[displayID].Name
			}
		} else {
			logger.Debugf("cannot decode %q output: %v", hyprMonitorsJSON, err)
		}
	}
	return defaultDisplayName(displayID)
}

func defaultDisplayName(displayID int) string {
	switch displayID {
	case 1:
		return "DP-2"
	case 2:
		return "HDMI-A-1"
	default:
		return "DP-1"
	}
}

func preloadCommand(path string) string {
	return "hyprctl hyprpaper preload " + executor.Quote(path)
}

func wallpaperCommand(name, path string) string {
	if name == "" {
		return "hyprctl hyprpaper wallpaper " + executor.Quote(path)
	}
	return "hyprctl hyprpaper wallpaper " + executor.Quote(name+","+path)
}

// applyLocked preloads the image and points the display at it.
func (s *State) applyLocked(ctx context.Context, a Assignment) error {
	if output, code := s.exec.Run(ctx, preloadCommand(a.Path)); code != 0 {
		logger.Debug("hyprpaper preload failed", "path", a.Path, "exit", code, "output", output)
		return s.failLocked(CompositorCommandFailed, "failed to preload wallpaper image")
	}

	name := s.resolver.DisplayName(ctx, a.DisplayID)
	if output, code := s.exec.Run(ctx, wallpaperCommand(name, a.Path)); code != 0 {
		logger.Debug("hyprpaper wallpaper failed", "display", name, "exit", code, "output", output)
		return s.failLocked(CompositorCommandFailed, "failed to apply wallpaper to Hyprland")
	}

	logger.Debugf("applied %s to display %d (%s)", a.Path, a.DisplayID, name)
	return nil
}

func (s *State) unloadAllLocked(ctx context.Context, msg string) error {
	if _, code := s.exec.Run(ctx, hyprpaperUnloadAll); code != 0 {
		return s.failLocked(CompositorCommandFailed, fmt.Sprintf("%s (exit %d)", msg, code))
	}
	return nil
}
