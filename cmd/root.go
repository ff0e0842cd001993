package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kartoza/dual-monitor-tools/internal/config"
	"github.com/kartoza/dual-monitor-tools/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	debugMode  bool
	configPath string

	// appConfig is loaded before any subcommand runs
	appConfig *config.Config
	closeLog  = func() error { return nil }
)

// SetVersion sets the application version (called from main)
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "dmt",
	Short: "Cursor and wallpaper tools for multi-monitor desktops",
	Long: `Dual Monitor Tools helps with desktops that span several monitors.

It supports:
  - Sticky and locked cursor modes that stop the pointer drifting between screens
  - Hotkeys to jump the cursor to the next, previous or primary screen
  - Wallpapers composed across any set of monitors with stretch, fit or crop
  - A system tray icon showing and switching the cursor mode`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: closing log: %v\n", err)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/dual-monitor-tools/config.json)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(monitorsCmd)
}

// setup loads the configuration and installs the logger
func setup() error {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	appConfig = cfg

	opts := cfg.Logging
	if debugMode {
		opts.Level = "debug"
		opts.Sink = logging.SinkStderr
	}
	closeFn, err := logging.Init(opts, config.GetConfigDir())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	closeLog = closeFn
	slog.Debug("configuration loaded", "path", path)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("dmt " + version)
	},
}
