package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/library"
	"github.com/bnema/wayper/internal/logger"
	"github.com/bnema/wayper/internal/ui"
)

var slideshowInterval time.Duration

var slideshowCmd = &cobra.Command{
	Use:   "slideshow [display]",
	Short: "Rotate random wallpapers on a display",
	Long: `Rotate random images from your wallpaper directories on a display.
The interval defaults to advanced.slideshowInterval. Displays are re-detected
before every change when advanced.enableHotplugEvents is set, and new files
in the directories are picked up when advanced.enableLiveSync is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
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

		dirs := s.cfg.WallpaperDirectories()
		images, err := library.Scan(dirs)
		if err != nil {
			logger.Warn("Some wallpaper directories could not be read", "error", err)
		}
		if len(images) == 0 && !s.cfg.Advanced.EnableLiveSync {
			return fmt.Errorf("no images found in %v", dirs)
		}

		interval := slideshowInterval
		if interval <= 0 {
			interval = time.Duration(s.cfg.Advanced.SlideshowInterval) * time.Second
		}

		slideCfg := ui.SlideshowConfig{
			DisplayID: d.ID,
			Interval:  interval,
			Images:    images,
			OnApplied: func(id int, _ string) {
				if err := s.persist(id); err != nil {
					logger.Error("Failed to save wallpaper", "error", err)
				}
			},
		}
		if s.cfg.Advanced.EnableHotplugEvents {
			slideCfg.Detector = s.detector
		}

		if s.cfg.Advanced.EnableLiveSync {
			watchCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			updates, err := library.Watch(watchCtx, dirs, library.DefaultDebounce)
			if err != nil {
				logger.Warn("Live sync disabled", "error", err)
			} else {
				slideCfg.Updates = updates
			}
		}

		logger.Info("Starting slideshow", "display", d.Name, "images", len(images), "interval", interval)
		runner := ui.NewProgramRunner(ui.DefaultProgramConfig())
		return runner.Run(ctx, ui.NewSlideshow(s.state, slideCfg))
	},
}

func init() {
	slideshowCmd.Flags().DurationVarP(&slideshowInterval, "interval", "i", 0, "Time between wallpapers (e.g. 30s, 5m)")
	rootCmd.AddCommand(slideshowCmd)
}
