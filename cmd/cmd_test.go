package cmd

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/bnema/wayper/internal/config"
	"github.com/bnema/wayper/internal/executor"
)

const hyprTwoMonitors = "Monitor DP-1 (ID 0): 2560x1440 @ 165.000Hz at 0x0\n" +
	"Monitor HDMI-A-1 (ID 1): 1920x1080 @ 60.000Hz at 2560x0\n"

const hyprTwoMonitorsJSON = `[{"id":0,"name":"DP-1"},{"id":1,"name":"HDMI-A-1"}]`

type testEnv struct {
	fake    *executor.Fake
	out     *bytes.Buffer
	dir     string
	cfgPath string
}

// setupTest points the commands at a temp config file and a fake Hyprland
// with two monitors.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		fake: executor.NewFake().
			On("hyprctl monitors", hyprTwoMonitors, 0).
			On("hyprctl monitors -j", hyprTwoMonitorsJSON, 0).
			OnPrefix("hyprctl hyprpaper ", "ok", 0),
		out:     new(bytes.Buffer),
		dir:     dir,
		cfgPath: filepath.Join(dir, "wayper", "config.json"),
	}

	viper.Reset()
	config.Set(nil)
	cfgFile = env.cfgPath
	newExecutor = func() executor.Executor { return env.fake }
	resetFlags()

	rootCmd.SetOut(env.out)
	rootCmd.SetErr(env.out)

	t.Cleanup(func() {
		viper.Reset()
		config.Set(nil)
		config.SetConfigPath("")
		cfgFile = ""
		newExecutor = func() executor.Executor { return executor.NewShell() }
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	return env
}

func resetFlags() {
	logLevel = ""
	jsonOutput = false
	setAll = false
	setMode = ""
	removeAll = false
	geometryMode = ""
	thumbnailDir = ""
	slideshowInterval = 0
	_ = configInitCmd.Flags().Set("force", "false")
}

// run executes the root command with args and returns its output.
func (e *testEnv) run(args ...string) (string, error) {
	e.out.Reset()
	resetFlags()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return e.out.String(), err
}

func (e *testEnv) image(t *testing.T, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	return path
}

// savedDisplays reads the displays section straight from the config file.
func (e *testEnv) savedDisplays(t *testing.T) []config.DisplayConfig {
	t.Helper()
	viper.Reset()
	config.SetConfigPath(e.cfgPath)
	require.NoError(t, config.Init())
	return config.Get().Displays
}
