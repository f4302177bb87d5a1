package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/ui"
	"github.com/bnema/wayper/internal/wallpaper"
)

var modeCmd = &cobra.Command{
	Use:   "mode <display> <stretch|center|tile|scale>",
	Short: "Change the wallpaper mode of a display",
	Long:  `Change how the current wallpaper of a display is laid out and re-apply it.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}

		d, err := s.resolveDisplay(args[0])
		if err != nil {
			return err
		}
		mode, err := wallpaper.ParseMode(args[1])
		if err != nil {
			return err
		}

		step := fmt.Sprintf("Mode of %s", d.Name)
		if err := s.state.SetMode(ctx, d.ID, mode); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatResult(false, step, err.Error()))
			if s.state.Info(d.ID).IsZero() {
				return err
			}
			// the new mode is kept even though hyprpaper refused it
			if perr := s.persist(d.ID); perr != nil {
				return perr
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatResult(true, step, mode.String()))
		return s.persist(d.ID)
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
}
