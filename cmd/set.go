package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/ui"
	"github.com/bnema/wayper/internal/wallpaper"
)

var (
	setAll  bool
	setMode string
)

var setCmd = &cobra.Command{
	Use:   "set <image> [display]",
	Short: "Set the wallpaper of a display",
	Long: `Set the wallpaper of a display through hyprpaper. The display is an id
from 'wayper monitors' or an output name such as DP-1; the primary display
is used when omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVarP(&setAll, "all", "a", false, "Set the wallpaper on every display")
	setCmd.Flags().StringVarP(&setMode, "mode", "m", "", "Wallpaper mode: stretch, center, tile or scale")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := newSession(ctx)
	if err != nil {
		return err
	}

	path, err := imagePath(args[0])
	if err != nil {
		return err
	}

	mode := s.defaultMode()
	if setMode != "" {
		if mode, err = wallpaper.ParseMode(setMode); err != nil {
			return err
		}
	}

	var ids []int
	if setAll || (len(args) < 2 && s.cfg.Wallpaper.AutoApplyToAll) {
		ids = s.displayIDs()
	} else {
		var target string
		if len(args) == 2 {
			target = args[1]
		}
		d, err := s.resolveDisplay(target)
		if err != nil {
			return err
		}
		ids = []int{d.ID}
	}

	out := cmd.OutOrStdout()
	var stored []int
	var failed error
	for _, id := range ids {
		step := fmt.Sprintf("%s on %s", filepath.Base(path), s.detector.Name(id))
		err := s.set(ctx, path, id, mode)
		if err == nil {
			fmt.Fprintln(out, ui.FormatResult(true, step, mode.String()))
			stored = append(stored, id)
			continue
		}

		fmt.Fprintln(out, ui.FormatResult(false, step, err.Error()))
		failed = err
		if isPathError(err) {
			// the same file fails on every display
			return err
		}
		// apply failures keep the assignment
		stored = append(stored, id)
	}

	if err := s.persist(stored...); err != nil {
		return err
	}
	return failed
}
