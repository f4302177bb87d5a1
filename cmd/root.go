package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/config"
	"github.com/bnema/wayper/internal/executor"
	"github.com/bnema/wayper/internal/logger"
)

var (
	cfgFile  string
	logLevel string

	// newExecutor builds the shell runner used by every command
	newExecutor = func() executor.Executor { return executor.NewShell() }

	rootCmd = &cobra.Command{
		Use:   "wayper",
		Short: "wayper - per-display wallpapers for Hyprland",
		Long: `wayper detects your monitors and sets a wallpaper on each of them
through hyprpaper. Assignments are remembered in the config file and
restored on the next run.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is $XDG_CONFIG_HOME/wayper/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func initConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		config.SetConfigPath(cfgFile)
	}
	if err := config.Init(); err != nil {
		return err
	}

	// Flag beats config, config beats LOG_LEVEL
	level := logLevel
	if level == "" {
		level = config.Get().Logging.LogLevel
	}
	if level != "" {
		logger.SetLevel(level)
	}

	logger.Debug("Configuration loaded", "path", config.GetConfigPath())
	return nil
}
