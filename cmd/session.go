package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bnema/wayper/internal/config"
	"github.com/bnema/wayper/internal/display"
	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
	"github.com/bnema/wayper/internal/wallpaper"
)

// session ties the detector, the wallpaper state and the config together
// for one command invocation.
type session struct {
	cfg      *config.Config
	exec     executor.Executor
	detector *display.Detector
	state    *wallpaper.State
}

func newSession(ctx context.Context) (*session, error) {
	cfg := config.Get()
	exec := newExecutor()

	detector := display.NewDetector(exec, display.WithLegacySource(cfg.Detection.LegacySource))
	if err := detector.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to detect displays: %w", err)
	}
	if code := detector.LastErrorCode(); code != display.None {
		logger.Warn("Display detection incomplete", "code", code, "error", detector.LastError())
	}

	s := &session{
		cfg:      cfg,
		exec:     exec,
		detector: detector,
		state:    wallpaper.NewState(exec),
	}
	s.restore()
	return s, nil
}

// restore loads the stored assignments of connected displays without
// touching the compositor.
func (s *session) restore() {
	for _, dc := range s.cfg.Displays {
		if !dc.Enabled || dc.WallpaperPath == "" {
			continue
		}
		d, ok := s.findByName(dc.Name)
		if !ok {
			logger.Debug("Skipping stored wallpaper for disconnected display", "display", dc.Name)
			continue
		}
		if err := s.state.Restore(dc.WallpaperPath, d.ID, wallpaper.Mode(dc.WallpaperMode)); err != nil {
			logger.Warn("Cannot restore wallpaper", "display", dc.Name, "error", err)
		}
	}
	s.state.ClearError()
}

func (s *session) findByName(name string) (display.Display, bool) {
	for _, d := range s.detector.Displays() {
		if d.Name == name {
			return d, true
		}
	}
	return display.Display{}, false
}

// resolveDisplay accepts a display id or an output name. An empty argument
// selects the primary display.
func (s *session) resolveDisplay(arg string) (display.Display, error) {
	if arg == "" {
		return s.detector.Primary(), nil
	}
	if id, err := strconv.Atoi(arg); err == nil {
		d, ok := s.detector.Lookup(id)
		if !ok {
			return display.Display{}, fmt.Errorf("no display with id %d (have %s)", id, strings.Join(s.detector.Names(), ", "))
		}
		return d, nil
	}
	d, ok := s.findByName(arg)
	if !ok {
		return display.Display{}, fmt.Errorf("no display named %q (have %s)", arg, strings.Join(s.detector.Names(), ", "))
	}
	return d, nil
}

func (s *session) displayIDs() []int {
	displays := s.detector.Displays()
	ids := make([]int, len(displays))
	for i, d := range displays {
		ids[i] = d.ID
	}
	return ids
}

func (s *session) names() map[int]string {
	names := make(map[int]string)
	for _, d := range s.detector.Displays() {
		names[d.ID] = d.Name
	}
	return names
}

// defaultMode is the configured mode for new assignments.
func (s *session) defaultMode() wallpaper.Mode {
	mode, err := wallpaper.ParseMode(s.cfg.Wallpaper.DefaultMode)
	if err != nil {
		return wallpaper.DefaultMode
	}
	return mode
}

// set stores and applies path on displayID with mode.
func (s *session) set(ctx context.Context, path string, displayID int, mode wallpaper.Mode) error {
	if mode == wallpaper.DefaultMode {
		return s.state.Assign(ctx, path, displayID)
	}
	if err := s.state.Restore(path, displayID, mode); err != nil {
		return err
	}
	return s.state.Apply(ctx, displayID)
}

// persist writes the assignments of ids back to the config file.
func (s *session) persist(ids ...int) error {
	for _, id := range ids {
		name := s.detector.Name(id)
		if name == "" {
			continue
		}
		a := s.state.Info(id)
		if a.IsZero() {
			s.cfg.RemoveDisplayConfig(name)
			continue
		}
		s.cfg.SetDisplayConfig(config.DisplayConfig{
			Name:          name,
			WallpaperMode: int(a.Mode),
			WallpaperPath: a.Path,
			Scale:         1.0,
			Enabled:       true,
		})
		s.cfg.UI.LastWallpaperPath = a.Path
		s.cfg.UI.SelectedDisplay = id
	}

	if err := config.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// isPathError reports whether err rejects the image itself rather than the
// compositor call.
func isPathError(err error) bool {
	var we *wallpaper.Error
	if !errors.As(err, &we) {
		return false
	}
	switch we.Code {
	case wallpaper.InvalidPath, wallpaper.FileNotFound, wallpaper.UnsupportedFormat:
		return true
	}
	return false
}

// imagePath expands ~ and makes arg absolute so hyprpaper and the config see
// the same file. An empty arg stays empty.
func imagePath(arg string) (string, error) {
	if arg == "" {
		return "", nil
	}
	path, err := filepath.Abs(config.ExpandPath(arg))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", arg, err)
	}
	return path, nil
}
