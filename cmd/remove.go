package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/ui"
	"github.com/bnema/wayper/internal/wallpaper"
)

var removeAll bool

var removeCmd = &cobra.Command{
	Use:     "remove [display]",
	Aliases: []string{"rm", "clear"},
	Short:   "Forget the wallpaper of a display",
	Long: `Forget the wallpaper of a display. With --all every assignment is dropped
and hyprpaper unloads its preloaded images.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if removeAll {
			err := s.state.RemoveAll(ctx)
			fmt.Fprintln(out, ui.FormatResult(err == nil, "Remove all wallpapers", errText(err)))
			if perr := s.persist(s.displayIDs()...); perr != nil {
				return perr
			}
			return err
		}

		var target string
		if len(args) == 1 {
			target = args[0]
		}
		d, err := s.resolveDisplay(target)
		if err != nil {
			return err
		}

		err = s.state.Remove(ctx, d.ID)
		fmt.Fprintln(out, ui.FormatResult(err == nil, fmt.Sprintf("Remove wallpaper of %s", d.Name), errText(err)))
		if s.state.LastErrorCode() == wallpaper.DisplayNotFound {
			return err
		}
		// the assignment is gone even when hyprpaper failed to unload
		if perr := s.persist(d.ID); perr != nil {
			return perr
		}
		return err
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeAll, "all", "a", false, "Remove the wallpaper of every display")
	rootCmd.AddCommand(removeCmd)
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
