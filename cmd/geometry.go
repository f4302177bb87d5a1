package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/ui"
	"github.com/bnema/wayper/internal/wallpaper"
)

var geometryMode string

var geometryCmd = &cobra.Command{
	Use:   "geometry <image> [display]",
	Short: "Show where an image lands on a display",
	Long: `Compute the placement of an image on a display for each wallpaper mode
without changing anything. Use --mode to show a single mode.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		var target string
		if len(args) == 2 {
			target = args[1]
		}
		d, err := s.resolveDisplay(target)
		if err != nil {
			return err
		}
		path, err := imagePath(args[0])
		if err != nil {
			return err
		}

		modes := wallpaper.Modes
		if geometryMode != "" {
			mode, err := wallpaper.ParseMode(geometryMode)
			if err != nil {
				return err
			}
			modes = []wallpaper.Mode{mode}
		}

		// scratch state, nothing is applied or saved
		scratch := wallpaper.NewState(s.exec)
		out := cmd.OutOrStdout()
		for i, mode := range modes {
			if err := scratch.Restore(path, d.ID, mode); err != nil {
				return err
			}
			if i == 0 {
				a := scratch.Info(d.ID)
				fmt.Fprintln(out, ui.FormatAppHeader("GEOMETRY", fmt.Sprintf("%dx%d image on %s", a.Width, a.Height, d)))
			}
			p, ok := scratch.Placement(d)
			if !ok {
				return fmt.Errorf("cannot place image on %s", d.Name)
			}
			panel := ui.InfoPanel{Title: mode.String(), Content: ui.PlacementLines(p)}
			fmt.Fprintln(out, panel.View())
		}
		return nil
	},
}

func init() {
	geometryCmd.Flags().StringVarP(&geometryMode, "mode", "m", "", "Only show this mode")
	rootCmd.AddCommand(geometryCmd)
}
