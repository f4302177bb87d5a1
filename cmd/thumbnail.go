package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/config"
	"github.com/bnema/wayper/internal/library"
	"github.com/bnema/wayper/internal/logger"
	"github.com/bnema/wayper/internal/ui"
)

var thumbnailDir string

var thumbnailCmd = &cobra.Command{
	Use:     "thumbnail [image...]",
	Aliases: []string{"thumbs"},
	Short:   "Generate wallpaper thumbnails",
	Long: `Generate cached thumbnails for the given images, or for every image in
the wallpaper directories when none are given. Each generated path is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		thumbs := &library.Thumbnails{Dir: thumbnailDir}
		if thumbnailDir == "" {
			var err error
			if thumbs, err = library.NewThumbnails(); err != nil {
				return fmt.Errorf("failed to locate cache directory: %w", err)
			}
		}

		images := make([]string, 0, len(args))
		for _, arg := range args {
			path, err := imagePath(arg)
			if err != nil {
				return err
			}
			images = append(images, path)
		}
		if len(images) == 0 {
			var err error
			images, err = library.Scan(config.Get().WallpaperDirectories())
			if err != nil {
				logger.Warn("Some wallpaper directories could not be read", "error", err)
			}
		}

		out := cmd.OutOrStdout()
		var failed int
		for _, img := range images {
			thumb, err := thumbs.Get(img)
			if err != nil {
				failed++
				fmt.Fprintln(out, ui.FormatResult(false, filepath.Base(img), err.Error()))
				continue
			}
			fmt.Fprintln(out, ui.FormatResult(true, filepath.Base(img), thumb))
		}

		progress := ui.ProgressIndicator{
			Label:          "Thumbnails",
			Current:        len(images) - failed,
			Total:          len(images),
			Width:          50,
			ShowPercentage: true,
		}
		fmt.Fprintln(out, progress.View())

		if failed > 0 {
			return fmt.Errorf("%d of %d thumbnail(s) failed", failed, len(images))
		}
		return nil
	},
}

func init() {
	thumbnailCmd.Flags().StringVar(&thumbnailDir, "dir", "", "Thumbnail directory (default is the user cache directory)")
	rootCmd.AddCommand(thumbnailCmd)
}
