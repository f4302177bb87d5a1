package display

import (
	"testing"

	"github.com/BurntSushi/xgb/randr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHyprlandOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []Display
	}{
		{
			name:   "single line layout",
			output: "Monitor DP-1 (ID 0): 2560x1440 @ 165.001Hz at 0x0\n",
			want: []Display{
				{ID: 0, Name: "DP-1", Description: "DP-1 (2560x1440@165Hz)", Width: 2560, Height: 1440,
					RefreshRate: 165, Primary: true, Active: true, Connector: "DisplayPort", Scale: 1.0},
			},
		},
		{
			name: "two monitors with negative origin",
			output: "Monitor DP-1 (ID 0): 2560x1440 @ 144.000Hz at 0x0\n" +
				"Monitor HDMI-A-1 (ID 1): 1920x1080 @ 60.000Hz at -1920x0\n",
			want: []Display{
				{ID: 0, Name: "DP-1", Description: "DP-1 (2560x1440@144Hz)", Width: 2560, Height: 1440,
					RefreshRate: 144, Primary: true, Active: true, Connector: "DisplayPort", Scale: 1.0},
				{ID: 1, Name: "HDMI-A-1", Description: "HDMI-A-1 (1920x1080@60Hz)", Width: 1920, Height: 1080,
					RefreshRate: 60, X: -1920, Active: true, Connector: "HDMI", Scale: 1.0},
			},
		},
		{
			name: "multi line hyprctl layout",
			output: `Monitor DP-2 (ID 1):
	3840x2160@59.99700 at 2560x0
	description: Dell Inc. DELL U2720Q
	make: Dell Inc.
	focused: no

Monitor DVI-D-1 (ID 3):
	1280x1024@75.02500 at 0x0
	focused: yes
`,
			want: []Display{
				{ID: 1, Name: "DP-2", Description: "DP-2 (3840x2160@59Hz)", Width: 3840, Height: 2160,
					RefreshRate: 59, X: 2560, Active: true, Connector: "DisplayPort", Scale: 1.0},
				{ID: 3, Name: "DVI-D-1", Description: "DVI-D-1 (1280x1024@75Hz)", Width: 1280, Height: 1024,
					RefreshRate: 75, Primary: true, Active: true, Connector: "DVI", Scale: 1.0},
			},
		},
		{
			name:   "unknown connector",
			output: "Monitor eDP-1 (ID 0): 1920x1200 @ 60.0Hz at 0x0\nMonitor VGA-1 (ID 1): 1024x768 @ 60.0Hz at 1920x0",
			want: []Display{
				{ID: 0, Name: "eDP-1", Description: "eDP-1 (1920x1200@60Hz)", Width: 1920, Height: 1200,
					RefreshRate: 60, Primary: true, Active: true, Connector: "DisplayPort", Scale: 1.0},
				{ID: 1, Name: "VGA-1", Description: "VGA-1 (1024x768@60Hz)", Width: 1024, Height: 768,
					RefreshRate: 60, X: 1920, Active: true, Connector: "Unknown", Scale: 1.0},
			},
		},
		{
			name:   "garbage",
			output: "hyprctl: no such instance\nsomething else",
			want:   nil,
		},
		{
			name:   "header without mode line",
			output: "Monitor DP-1 (ID 0):",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseHyprlandOutput(tt.output))
		})
	}
}

func TestParseXrandrOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []Display
	}{
		{
			name: "two monitors",
			output: "Monitors: 2\n" +
				" 0: +*DP-1 2560/597x1440/336+0+0  DP-1\n" +
				" 1: +HDMI-A-1 1920/509x1080/286+2560+0  HDMI-A-1\n",
			want: []Display{
				{ID: 0, Name: "DP-1", Description: "DP-1 (2560x1440@60Hz)", Width: 2560, Height: 1440,
					RefreshRate: 60, Primary: true, Active: true, Connector: "DisplayPort", Scale: 1.0},
				{ID: 1, Name: "HDMI-A-1", Description: "HDMI-A-1 (1920x1080@60Hz)", Width: 1920, Height: 1080,
					RefreshRate: 60, X: 2560, Active: true, Connector: "HDMI", Scale: 1.0},
			},
		},
		{
			name:   "ids follow parse order not listing index",
			output: "Monitors: 1\n 3: +XWAYLAND0 1920/520x1080/290+0+1080  XWAYLAND0\n",
			want: []Display{
				{ID: 0, Name: "XWAYLAND0", Description: "XWAYLAND0 (1920x1080@60Hz)", Width: 1920, Height: 1080,
					RefreshRate: 60, Y: 1080, Active: true, Connector: "Unknown", Scale: 1.0},
			},
		},
		{
			name:   "header only",
			output: "Monitors: 0\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseXrandrOutput(tt.output))
		})
	}
}

func TestRefreshFromMode(t *testing.T) {
	tests := []struct {
		name string
		mode randr.ModeInfo
		want int
	}{
		{"1080p60", randr.ModeInfo{DotClock: 148500000, Htotal: 2200, Vtotal: 1125}, 60},
		{"1440p144", randr.ModeInfo{DotClock: 586600000, Htotal: 2720, Vtotal: 1497}, 144},
		{"truncates", randr.ModeInfo{DotClock: 138500000, Htotal: 2080, Vtotal: 1111}, 59},
		{"no timings", randr.ModeInfo{}, 60},
		{"zero totals", randr.ModeInfo{DotClock: 148500000}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, refreshFromMode(tt.mode))
		})
	}
}

func TestDisplayGeometry(t *testing.T) {
	d := newDisplay("DP-1", 1920, 1080, 60, -1920, 0)
	require.False(t, d.Primary)

	x1, y1, x2, y2 := d.Bounds()
	assert.Equal(t, []int{-1920, 0, 0, 1080}, []int{x1, y1, x2, y2})
	assert.True(t, d.Contains(-1, 0))
	assert.False(t, d.Contains(0, 0))
	assert.False(t, d.IsZero())
	assert.True(t, Display{}.IsZero())
	assert.Equal(t, "DP-1 (1920x1080@60Hz)", d.String())
}

func TestVirtualSize(t *testing.T) {
	w, h := VirtualSize(nil)
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)

	w, h = VirtualSize([]Display{
		newDisplay("DP-1", 2560, 1440, 60, 0, 0),
		newDisplay("HDMI-A-1", 1920, 1080, 60, -1920, 360),
	})
	assert.Equal(t, 4480, w)
	assert.Equal(t, 1440, h)
}

func TestParseWlrRandrOutput(t *testing.T) {
	output := `[
		{"name":"DP-1","enabled":true,"position":{"x":0,"y":0},"scale":1.0,
		 "modes":[{"width":1920,"height":1080,"refresh":60.0,"preferred":true},
		          {"width":2560,"height":1440,"refresh":143.998,"current":true}]},
		{"name":"HDMI-A-1","enabled":false,"position":{"x":2560,"y":0},
		 "modes":[{"width":1920,"height":1080,"refresh":60.0,"current":true}]},
		{"name":"DP-2","enabled":true,"position":{"x":2560,"y":-200},
		 "modes":[{"width":1920,"height":1080,"refresh":74.97,"current":true}]},
		{"name":"DP-3","enabled":true,"position":{"x":0,"y":1440},"modes":[]}
	]`

	got, err := parseWlrRandrOutput(output)
	require.NoError(t, err)
	assert.Equal(t, []Display{
		{ID: 0, Name: "DP-1", Description: "DP-1 (2560x1440@143Hz)", Width: 2560, Height: 1440,
			RefreshRate: 143, Primary: true, Active: true, Connector: "DisplayPort", Scale: 1.0},
		{ID: 1, Name: "DP-2", Description: "DP-2 (1920x1080@74Hz)", Width: 1920, Height: 1080,
			RefreshRate: 74, X: 2560, Y: -200, Active: true, Connector: "DisplayPort", Scale: 1.0},
	}, got)

	_, err = parseWlrRandrOutput("not json")
	assert.Error(t, err)
}
