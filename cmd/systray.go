package cmd

import (
	"log/slog"

	"github.com/kartoza/dual-monitor-tools/internal/systray"
	"github.com/spf13/cobra"
)

var systrayCmd = &cobra.Command{
	Use:   "systray",
	Short: "Run the cursor engine with a system tray icon",
	Long: `Run the cursor engine as a system tray application.

The tray icon shows the current cursor mode:
  - Left-click: cycle free, sticky and lock
  - Right-click: menu with the modes, screen jumps and the wallpaper editor

Configured hotkeys stay active while the tray is running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		engine, err := startCursor(ctx)
		if err != nil {
			return err
		}
		defer engine.Stop()

		return systray.Run(ctx, engine, slog.Default().With("module", "systray"))
	},
}

func init() {
	rootCmd.AddCommand(systrayCmd)
}
