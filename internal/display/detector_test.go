package display

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/wayper/internal/executor"
)

const (
	hyprTwoMonitors = "Monitor DP-1 (ID 0): 2560x1440 @ 165.0Hz at 0x0\n" +
		"Monitor HDMI-A-1 (ID 1): 1920x1080 @ 60.0Hz at 2560x0\n"
	xrandrOneMonitor = "Monitors: 1\n 0: +*DP-3 1920/509x1080/286+0+0  DP-3\n"
)

type stubSource struct {
	name     string
	displays []Display
	err      error
	calls    int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Detect(ctx context.Context) ([]Display, error) {
	s.calls++
	return s.displays, s.err
}

func TestDetectorRefresh(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *executor.Fake)
		wantNames []string
		wantCode  ErrorCode
	}{
		{
			name: "hyprland wins",
			setup: func(f *executor.Fake) {
				f.On(hyprlandMonitorsCmd, hyprTwoMonitors, 0)
				f.On(xrandrMonitorsCmd, xrandrOneMonitor, 0)
			},
			wantNames: []string{"DP-1", "HDMI-A-1"},
			wantCode:  None,
		},
		{
			name: "falls back to xrandr when hyprctl fails",
			setup: func(f *executor.Fake) {
				f.On(xrandrMonitorsCmd, xrandrOneMonitor, 0)
			},
			wantNames: []string{"DP-3"},
			wantCode:  None,
		},
		{
			name: "falls back to xrandr when hyprctl output is unparsable",
			setup: func(f *executor.Fake) {
				f.On(hyprlandMonitorsCmd, "ok\n", 0)
				f.On(xrandrMonitorsCmd, xrandrOneMonitor, 0)
			},
			wantNames: []string{"DP-3"},
			wantCode:  None,
		},
		{
			name:      "synthesizes a default display",
			setup:     func(f *executor.Fake) {},
			wantNames: []string{"DP-1"},
			wantCode:  NoDisplaysFound,
		},
		{
			name: "synthesizes when both outputs are garbage",
			setup: func(f *executor.Fake) {
				f.On(hyprlandMonitorsCmd, "garbage", 0)
				f.On(xrandrMonitorsCmd, "Monitors: 0", 0)
			},
			wantNames: []string{"DP-1"},
			wantCode:  NoDisplaysFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := executor.NewFake()
			tt.setup(fake)
			d := NewDetector(fake)

			require.NoError(t, d.Refresh(context.Background()))
			assert.Equal(t, tt.wantNames, d.Names())
			assert.Equal(t, tt.wantCode, d.LastErrorCode())
			assert.Equal(t, len(tt.wantNames), d.Count())
		})
	}
}

func TestDetectorFallbackDisplay(t *testing.T) {
	d := NewDetector(executor.NewFake())
	require.NoError(t, d.Refresh(context.Background()))

	require.Equal(t, 1, d.Count())
	disp := d.Displays()[0]
	assert.Equal(t, "DP-1", disp.Name)
	assert.Equal(t, 1920, disp.Width)
	assert.Equal(t, 1080, disp.Height)
	assert.Equal(t, 60, disp.RefreshRate)
	assert.True(t, disp.Primary)
	assert.NotEmpty(t, d.LastError())

	d.ClearError()
	assert.Equal(t, None, d.LastErrorCode())
	assert.Empty(t, d.LastError())
}

func TestDetectorRefreshReplacesList(t *testing.T) {
	fake := executor.NewFake().On(hyprlandMonitorsCmd, hyprTwoMonitors, 0)
	d := NewDetector(fake)
	require.NoError(t, d.Refresh(context.Background()))
	require.Equal(t, 2, d.Count())

	fake.On(hyprlandMonitorsCmd, "Monitor DP-2 (ID 0): 1280x720 @ 60Hz at 0x0", 0)
	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, []string{"DP-2"}, d.Names())
}

func TestDetectorHardFailure(t *testing.T) {
	fake := executor.NewFake().On(hyprlandMonitorsCmd, hyprTwoMonitors, 0)
	d := NewDetector(fake)
	require.NoError(t, d.Refresh(context.Background()))
	require.Equal(t, 2, d.Count())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Refresh(ctx)
	require.Error(t, err)

	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, SystemError, de.Code)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 0, d.Count())
	assert.Empty(t, d.Displays())
	assert.Equal(t, SystemError, d.LastErrorCode())
	assert.True(t, d.Primary().IsZero())
}

func TestDetectorSourceErrorCleared(t *testing.T) {
	failing := &stubSource{name: "a", err: newError(CompositorNotRunning, "not running")}
	working := &stubSource{name: "b", displays: []Display{newDisplay("DP-1", 800, 600, 60, 0, 0)}}
	d := NewDetector(nil, WithSources(failing, working))

	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, None, d.LastErrorCode())
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
}

func TestDetectorStopsAtFirstSource(t *testing.T) {
	first := &stubSource{name: "a", displays: []Display{newDisplay("DP-1", 800, 600, 60, 0, 0)}}
	second := &stubSource{name: "b"}
	d := NewDetector(nil, WithSources(first, second))

	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, 0, second.calls)
}

func TestDetectorLookups(t *testing.T) {
	fake := executor.NewFake().On(hyprlandMonitorsCmd, hyprTwoMonitors, 0)
	d := NewDetector(fake)

	// Before refresh everything returns the placeholder
	assert.True(t, d.Display(0).IsZero())
	assert.True(t, d.Primary().IsZero())
	assert.Equal(t, 0, d.Count())

	require.NoError(t, d.Refresh(context.Background()))

	assert.Equal(t, "HDMI-A-1", d.Display(1).Name)
	assert.Equal(t, "HDMI-A-1", d.Name(1))
	assert.True(t, d.HasDisplay(0))
	assert.False(t, d.HasDisplay(7))
	assert.True(t, d.Display(7).IsZero())
	assert.Equal(t, Display{}, d.Display(-1))
	assert.Equal(t, "", d.Name(7))

	_, ok := d.Lookup(7)
	assert.False(t, ok)

	disp, ok := d.At(2600, 10)
	require.True(t, ok)
	assert.Equal(t, "HDMI-A-1", disp.Name)
	_, ok = d.At(-5, 10)
	assert.False(t, ok)

	// Displays returns a copy
	list := d.Displays()
	list[0].Name = "changed"
	assert.Equal(t, "DP-1", d.Name(0))
}

func TestDetectorPrimary(t *testing.T) {
	tests := []struct {
		name            string
		displays        []Display
		expectedPrimary string
	}{
		{
			name: "display at 0,0 should be primary",
			displays: []Display{
				newDisplay("Monitor1", 1920, 1080, 60, -1920, 0),
				newDisplay("Monitor2", 1920, 1080, 60, 0, 0),
			},
			expectedPrimary: "Monitor2",
		},
		{
			name: "first display fallback when none at 0,0",
			displays: []Display{
				newDisplay("Monitor1", 1920, 1080, 60, -1920, 0),
				newDisplay("Monitor2", 1920, 1080, 60, 1920, 0),
			},
			expectedPrimary: "Monitor1",
		},
		{
			name: "single display at 0,0",
			displays: []Display{
				newDisplay("Monitor1", 1920, 1080, 60, 0, 0),
			},
			expectedPrimary: "Monitor1",
		},
		{
			name: "multiple displays, one at 0,0",
			displays: []Display{
				newDisplay("Monitor1", 3840, 2160, 60, -3840, 0),
				newDisplay("Monitor2", 3840, 2160, 60, 0, 0),
				newDisplay("Monitor3", 1920, 1080, 60, 3840, 0),
			},
			expectedPrimary: "Monitor2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(nil, WithSources(&stubSource{name: "stub", displays: tt.displays}))
			require.NoError(t, d.Refresh(context.Background()))
			assert.Equal(t, tt.expectedPrimary, d.Primary().Name)

			primaries := 0
			for _, disp := range d.Displays() {
				if disp.Primary {
					primaries++
				}
			}
			assert.LessOrEqual(t, primaries, 1)
		})
	}
}

func TestWithLegacySource(t *testing.T) {
	d := NewDetector(executor.NewFake(), WithLegacySource(LegacyRandr))
	require.Len(t, d.sources, 2)
	assert.Equal(t, "randr", d.sources[1].Name())

	d = NewDetector(executor.NewFake(), WithLegacySource(LegacyWlrRandr))
	assert.Equal(t, "wlr-randr", d.sources[1].Name())

	d = NewDetector(executor.NewFake(), WithLegacySource("bogus"))
	assert.Equal(t, "xrandr", d.sources[1].Name())
}

func TestWlrRandrFallback(t *testing.T) {
	fake := executor.NewFake().On(wlrRandrCmd, `[
		{"name":"eDP-1","enabled":true,"position":{"x":0,"y":0},"scale":1.5,
		 "modes":[{"width":2880,"height":1800,"refresh":90.001,"current":true}]}
	]`, 0)
	d := NewDetector(fake, WithLegacySource(LegacyWlrRandr))

	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, None, d.LastErrorCode())
	require.Equal(t, 1, d.Count())
	assert.Equal(t, "eDP-1 (2880x1800@90Hz)", d.Display(0).Description)
	assert.Equal(t, []string{hyprlandMonitorsCmd, wlrRandrCmd}, fake.Calls())
}
