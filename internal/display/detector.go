package display

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
)

// Source is one way of discovering the monitor layout.
type Source interface {
	Name() string
	Detect(ctx context.Context) ([]Display, error)
}

// Legacy source names accepted by WithLegacySource.
const (
	LegacyXrandr   = "xrandr"
	LegacyRandr    = "randr"
	LegacyWlrRandr = "wlr-randr"
)

// Option configures a Detector.
type Option func(*Detector)

// WithLegacySource selects how the X server is queried when the compositor
// reports nothing: "xrandr" runs the CLI, "randr" speaks the protocol and
// "wlr-randr" asks a wlroots compositor instead.
func WithLegacySource(name string) Option {
	return func(d *Detector) {
		switch name {
		case LegacyRandr:
			d.sources = []Source{d.sources[0], &randrSource{}}
		case LegacyWlrRandr:
			d.sources = []Source{d.sources[0], &wlrRandrSource{exec: d.exec}}
		case LegacyXrandr, "":
			d.sources = []Source{d.sources[0], &xrandrSource{exec: d.exec}}
		default:
			logger.Warnf("unknown legacy display source %q, using xrandr", name)
		}
	}
}

// WithSources replaces the detection chain.
func WithSources(sources ...Source) Option {
	return func(d *Detector) {
		d.sources = sources
	}
}

// Detector holds the displays found by the last Refresh.
type Detector struct {
	mu       sync.Mutex
	exec     executor.Executor
	sources  []Source
	displays []Display

	lastErr  string
	lastCode ErrorCode
}

// NewDetector creates a detector that asks Hyprland first and the X server
// second. Nothing is queried until Refresh is called.
func NewDetector(exec executor.Executor, opts ...Option) *Detector {
	d := &Detector{
		exec: exec,
		sources: []Source{
			&hyprlandSource{exec: exec},
			&xrandrSource{exec: exec},
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Refresh replaces the display list with a fresh detection. Sources are tried
// in order and the first non-empty result wins. When every source comes back
// empty a single default display is synthesized and NoDisplaysFound is
// recorded without failing. A cancelled or expired context empties the list
// and is returned as a SystemError.
func (d *Detector) Refresh(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.setError(None, "")

	var found []Display
	for _, src := range d.sources {
		logger.Debugf("Detector.Refresh: trying source %s", src.Name())
		displays, err := src.Detect(ctx)

		if ctxErr := ctx.Err(); ctxErr != nil {
			d.displays = nil
			e := &Error{Code: SystemError, Msg: "display detection aborted", Err: ctxErr}
			d.setError(e.Code, e.Error())
			return e
		}

		if err != nil {
			var de *Error
			if errors.As(err, &de) {
				d.setError(de.Code, de.Error())
			} else {
				d.setError(CommandExecutionFailed, err.Error())
			}
			logger.Debugf("Detector.Refresh: source %s failed: %v", src.Name(), err)
			continue
		}

		if len(displays) > 0 {
			logger.Debugf("Detector.Refresh: source %s found %d displays", src.Name(), len(displays))
			found = displays
			d.setError(None, "")
			break
		}
	}

	if len(found) == 0 {
		logger.Warn("no display detection method available, using default display")
		found = []Display{fallbackDisplay()}
		d.setError(NoDisplaysFound, "no display detection method available, using default")
	}

	d.displays = found
	return nil
}

// Displays returns a copy of the detected displays in detection order.
func (d *Detector) Displays() []Display {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Display, len(d.displays))
	copy(out, d.displays)
	return out
}

// Display returns the display with the given id, or the zero Display.
func (d *Detector) Display(id int) Display {
	disp, _ := d.Lookup(id)
	return disp
}

// Lookup returns the display with the given id and whether it exists.
func (d *Detector) Lookup(id int) (Display, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, disp := range d.displays {
		if disp.ID == id {
			return disp, true
		}
	}
	return Display{}, false
}

// Primary returns the display flagged primary, falling back to the first
// display and then to the zero Display.
func (d *Detector) Primary() Display {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, disp := range d.displays {
		if disp.Primary {
			return disp
		}
	}
	if len(d.displays) > 0 {
		return d.displays[0]
	}
	return Display{}
}

// Count returns the number of detected displays.
func (d *Detector) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.displays)
}

// HasDisplay reports whether a display with the given id was detected.
func (d *Detector) HasDisplay(id int) bool {
	_, ok := d.Lookup(id)
	return ok
}

// Name returns the connector name of display id, or "".
func (d *Detector) Name(id int) string {
	return d.Display(id).Name
}

// Names returns every display name in detection order.
func (d *Detector) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.displays))
	for _, disp := range d.displays {
		names = append(names, disp.Name)
	}
	return names
}

// At returns the display containing the global coordinate (x, y).
func (d *Detector) At(x, y int) (Display, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, disp := range d.displays {
		if disp.Contains(x, y) {
			return disp, true
		}
	}
	return Display{}, false
}

func (d *Detector) LastError() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

func (d *Detector) LastErrorCode() ErrorCode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastCode
}

func (d *Detector) ClearError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setError(None, "")
}

func (d *Detector) setError(code ErrorCode, msg string) {
	d.lastCode = code
	d.lastErr = msg
}
