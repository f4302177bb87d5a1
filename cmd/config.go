package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/config"
	"github.com/bnema/wayper/internal/logger"
	"github.com/bnema/wayper/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage wayper configuration",
	Long:  `Manage wayper configuration including wallpaper directories and stored assignments.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		out := cmd.OutOrStdout()
		kv := func(key string, value any) {
			fmt.Fprintln(out, "  "+ui.FormatKeyValue(key, 20, value))
		}

		fmt.Fprintln(out, ui.FormatAppHeader("CONFIG", config.GetConfigPath()))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("\n[Wallpaper]"))
		kv("Directories", cfg.Wallpaper.Directories)
		kv("Default mode", cfg.Wallpaper.DefaultMode)
		kv("Apply to all", cfg.Wallpaper.AutoApplyToAll)

		fmt.Fprintln(out, ui.SubheaderStyle.Render("\n[Advanced]"))
		kv("Hotplug events", cfg.Advanced.EnableHotplugEvents)
		kv("Live sync", cfg.Advanced.EnableLiveSync)
		kv("Slideshow", cfg.Advanced.EnableSlideshow)
		kv("Slideshow interval", fmt.Sprintf("%d seconds", cfg.Advanced.SlideshowInterval))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("\n[Detection]"))
		kv("Legacy source", cfg.Detection.LegacySource)

		fmt.Fprintln(out, ui.SubheaderStyle.Render("\n[UI]"))
		kv("Selected display", cfg.UI.SelectedDisplay)
		kv("Last wallpaper", cfg.UI.LastWallpaperPath)

		if len(cfg.Displays) > 0 {
			fmt.Fprintln(out, ui.SubheaderStyle.Render("\n[Displays]"))
			for _, d := range cfg.Displays {
				state := ui.ActiveIndicator
				if !d.Enabled {
					state = ui.InactiveIndicator
				}
				fmt.Fprintf(out, "  %s %s  mode %d  %s\n", state, ui.BoldStyle.Render(d.Name), d.WallpaperMode, d.WallpaperPath)
			}
		}
		return nil
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save current configuration to file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration saved to: %s", config.GetConfigPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if config already exists
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Infof("Configuration file already exists at: %s", configPath)
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		// Save default configuration
		d := config.DefaultConfig
		d.Wallpaper.Directories = append([]string(nil), config.DefaultConfig.Wallpaper.Directories...)
		d.Displays = []config.DisplayConfig{}
		config.Set(&d)
		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
		return nil
	},
}

var configBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the configuration file to config.json.backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, err := config.Backup()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatResult(true, "Backup written", dst))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file",
	// the file is loaded in RunE so parse errors are reported as results
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			config.SetConfigPath(cfgFile)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := config.Init(); err != nil {
			fmt.Fprintln(out, ui.FormatResult(false, "Parse "+config.GetConfigPath(), err.Error()))
			return err
		}
		if err := config.Get().Validate(); err != nil {
			fmt.Fprintln(out, ui.FormatResult(false, "Validate", err.Error()))
			return err
		}
		fmt.Fprintln(out, ui.FormatResult(true, "Configuration is valid", config.GetConfigPath()))
		return nil
	},
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(config.Get())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configBackupCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configDumpCmd)

	configInitCmd.Flags().Bool("force", false, "Force overwrite existing configuration")
	rootCmd.AddCommand(configCmd)
}
