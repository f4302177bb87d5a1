package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/dialog"
	"github.com/bnema/wayper/internal/library"
	"github.com/bnema/wayper/internal/logger"
	"github.com/bnema/wayper/internal/ui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively choose a display, mode and image",
	Long: `Choose a display, a wallpaper mode and an image from your wallpaper
directories. "Browse…" opens a zenity file dialog for anything else.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}

		images, err := library.Scan(s.cfg.WallpaperDirectories())
		if err != nil {
			logger.Warn("Some wallpaper directories could not be read", "error", err)
		}

		picker := ui.NewPicker(s.detector.Displays(), images, dialog.New(s.exec))
		picker.DefaultMode = s.defaultMode()
		picker.LastPath = s.cfg.UI.LastWallpaperPath

		sel, err := picker.Run(ctx)
		if err != nil {
			return err
		}

		step := fmt.Sprintf("%s on %s", filepath.Base(sel.Path), s.detector.Name(sel.DisplayID))
		err = s.set(ctx, sel.Path, sel.DisplayID, sel.Mode)
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatResult(err == nil, step, errText(err)))
		if err != nil && isPathError(err) {
			return err
		}
		if perr := s.persist(sel.DisplayID); perr != nil {
			return perr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
}
