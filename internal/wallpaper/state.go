// Package wallpaper tracks one wallpaper per display and pushes the
// assignments to hyprpaper.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/wayper/internal/display"
	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
)

var supportedFormats = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".webp", ".gif"}

// Assignment is the wallpaper stored for one display.
type Assignment struct {
	Path      string
	Mode      Mode
	Width     int
	Height    int
	Format    string
	DisplayID int
}

// IsZero reports whether a is the empty value returned for unknown displays.
func (a Assignment) IsZero() bool {
	return a == Assignment{}
}

// Option configures a State.
type Option func(*State)

// WithNameResolver overrides how display ids are turned into output names.
func WithNameResolver(r NameResolver) Option {
	return func(s *State) {
		s.resolver = r
	}
}

// State holds the wallpaper assignments keyed by display id.
type State struct {
	mu       sync.Mutex
	exec     executor.Executor
	resolver NameResolver

	assignments map[int]Assignment
	all         []Assignment
	dirty       bool

	lastErr  string
	lastCode ErrorCode
}

// NewState creates an empty state that applies through exec.
func NewState(exec executor.Executor, opts ...Option) *State {
	s := &State{
		exec:        exec,
		resolver:    hyprctlResolver{exec: exec},
		assignments: make(map[int]Assignment),
		dirty:       true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SupportedFormats returns the accepted file extensions, lowercase with dot.
func SupportedFormats() []string {
	return slices.Clone(supportedFormats)
}

// SupportedFormats is the method form of the package function.
func (s *State) SupportedFormats() []string {
	return SupportedFormats()
}

// IsSupportedFormat reports whether path has an accepted extension.
func IsSupportedFormat(path string) bool {
	return slices.Contains(supportedFormats, strings.ToLower(filepath.Ext(path)))
}

// IsValidPath reports whether path is non-empty, exists and has a supported
// extension.
func (s *State) IsValidPath(path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return IsSupportedFormat(path)
}

// Assign stores path as the wallpaper of displayID and applies it. A failed
// apply is returned but the assignment is kept so it can be retried.
func (s *State) Assign(ctx context.Context, path string, displayID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearErrorLocked()
	a, err := s.buildLocked(path, displayID, DefaultMode)
	if err != nil {
		return err
	}
	s.storeLocked(a)
	return s.applyLocked(ctx, a)
}

// AssignAll assigns the same wallpaper to every listed display, or to
// display 0 when the list is empty.
func (s *State) AssignAll(ctx context.Context, path string, displayIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearErrorLocked()
	if len(displayIDs) == 0 {
		displayIDs = []int{0}
	}

	var errs []error
	for _, id := range displayIDs {
		a, err := s.buildLocked(path, id, DefaultMode)
		if err != nil {
			// Path problems are the same for every display
			return err
		}
		s.storeLocked(a)
		if err := s.applyLocked(ctx, a); err != nil {
			errs = append(errs, fmt.Errorf("display %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Restore stores an assignment without touching the compositor. It is used
// to rebuild state from the saved config.
func (s *State) Restore(path string, displayID int, mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearErrorLocked()
	if !mode.Valid() {
		mode = DefaultMode
	}
	a, err := s.buildLocked(path, displayID, mode)
	if err != nil {
		return err
	}
	s.storeLocked(a)
	return nil
}

// SetMode changes the mode of an existing assignment and re-applies it.
func (s *State) SetMode(ctx context.Context, displayID int, mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearErrorLocked()
	if displayID < 0 {
		return s.failLocked(InvalidDisplayId, fmt.Sprintf("invalid display id %d", displayID))
	}
	a, ok := s.assignments[displayID]
	if !ok {
		return s.failLocked(DisplayNotFound, fmt.Sprintf("No wallpaper set for display %d", displayID))
	}

	a.Mode = mode
	s.storeLocked(a)
	return s.applyLocked(ctx, a)
}

// Apply pushes the stored assignment of displayID to the compositor again.
func (s *State) Apply(ctx context.Context, displayID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearErrorLocked()
	a, ok := s.assignments[displayID]
	if !ok {
		return s.failLocked(DisplayNotFound, fmt.Sprintf("No wallpaper set for display %d", displayID))
	}
	return s.applyLocked(ctx, a)
}

// ApplyAll re-applies every assignment in display order. All displays are
// attempted even when one fails.
func (s *State) ApplyAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearErrorLocked()
	var errs []error
	for _, a := range s.allLocked() {
		if err := s.applyLocked(ctx, a); err != nil {
			errs = append(errs, fmt.Errorf("display %d: %w", a.DisplayID, err))
		}
	}
	return errors.Join(errs...)
}

// Remove forgets the wallpaper of displayID and unloads hyprpaper's images.
func (s *State) Remove(ctx context.Context, displayID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearErrorLocked()
	if _, ok := s.assignments[displayID]; !ok {
		return s.failLocked(DisplayNotFound, fmt.Sprintf("No wallpaper set for display %d", displayID))
	}

	delete(s.assignments, displayID)
	s.dirty = true
	return s.unloadAllLocked(ctx, "failed to remove wallpaper from Hyprland")
}

// RemoveAll forgets every assignment and unloads hyprpaper's images.
func (s *State) RemoveAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearErrorLocked()
	clear(s.assignments)
	s.dirty = true
	return s.unloadAllLocked(ctx, "failed to remove all wallpapers from Hyprland")
}

// All returns every assignment ordered by display id. The slice is shared
// between calls until the next mutation and must not be modified.
func (s *State) All() []Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allLocked()
}

func (s *State) allLocked() []Assignment {
	if !s.dirty {
		return s.all
	}

	ids := make([]int, 0, len(s.assignments))
	for id := range s.assignments {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	s.all = make([]Assignment, 0, len(ids))
	for _, id := range ids {
		s.all = append(s.all, s.assignments[id])
	}
	s.dirty = false
	return s.all
}

// Mode returns the mode of displayID, Scale when nothing is assigned.
func (s *State) Mode(displayID int) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.assignments[displayID]; ok {
		return a.Mode
	}
	return DefaultMode
}

// Current returns the wallpaper path of displayID or "".
func (s *State) Current(displayID int) string {
	return s.Info(displayID).Path
}

// Info returns the assignment of displayID or the zero Assignment.
func (s *State) Info(displayID int) Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignments[displayID]
}

// Placement computes where the wallpaper of d.ID lands on d.
func (s *State) Placement(d display.Display) (Placement, bool) {
	a := s.Info(d.ID)
	if a.IsZero() {
		return Placement{}, false
	}
	return Place(a.Mode, d.Width, d.Height, a.Width, a.Height)
}

func (s *State) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *State) LastErrorCode() ErrorCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCode
}

// ClearError resets the recorded error. Like every mutation it also drops
// the cached view returned by All.
func (s *State) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearErrorLocked()
}

// buildLocked validates path and reads the image size. Validation order is
// empty path, then extension, then existence.
func (s *State) buildLocked(path string, displayID int, mode Mode) (Assignment, error) {
	if path == "" {
		return Assignment{}, s.failLocked(InvalidPath, "wallpaper path cannot be empty")
	}
	if !IsSupportedFormat(path) {
		return Assignment{}, s.failLocked(UnsupportedFormat, "invalid image file: "+path)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Assignment{}, s.failLocked(FileNotFound, "file not found: "+path)
		}
		e := &Error{Code: SystemError, Msg: "cannot access " + path, Err: err}
		s.lastCode, s.lastErr = e.Code, e.Error()
		return Assignment{}, e
	}

	w, h := imageDimensions(path)
	return Assignment{
		Path:      path,
		Mode:      mode,
		Width:     w,
		Height:    h,
		Format:    strings.ToLower(filepath.Ext(path)),
		DisplayID: displayID,
	}, nil
}

func (s *State) storeLocked(a Assignment) {
	s.assignments[a.DisplayID] = a
	s.dirty = true
}

func (s *State) clearErrorLocked() {
	s.lastErr = ""
	s.lastCode = None
	s.dirty = true
}

func (s *State) failLocked(code ErrorCode, msg string) error {
	s.lastCode = code
	s.lastErr = msg
	logger.Debugf("wallpaper: %s", msg)
	return newError(code, msg)
}
