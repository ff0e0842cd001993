package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/kartoza/dual-monitor-tools/internal/cursor"
	"github.com/kartoza/dual-monitor-tools/internal/hook"
	"github.com/kartoza/dual-monitor-tools/internal/hotkey"
	"github.com/kartoza/dual-monitor-tools/internal/models"
	"github.com/kartoza/dual-monitor-tools/internal/monitor"
	"github.com/kartoza/dual-monitor-tools/internal/notify"
	"github.com/spf13/cobra"
)

// displayPollInterval is how often the monitor layout is re-read
const displayPollInterval = 2 * time.Second

var cursorModeFlag string

var cursorCmd = &cobra.Command{
	Use:   "cursor",
	Short: "Control the cursor across screens",
}

var cursorRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cursor engine with its hotkeys",
	Long: `Run the cursor engine in the foreground until interrupted.

Modes:
  free    the cursor moves between screens unhindered
  sticky  the cursor must be pushed past a screen edge to leave it
  lock    the cursor stays on its current screen

The free movement key or button temporarily lifts sticky and lock.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		if cursorModeFlag != "" {
			mode, err := cursor.ParseMode(cursorModeFlag)
			if err != nil {
				return err
			}
			appConfig.Cursor.DefaultMode = mode
		}

		engine, err := startCursor(ctx)
		if err != nil {
			return err
		}
		defer engine.Stop()

		fmt.Printf("Cursor mode: %s (Ctrl+C to quit)\n", engine.Mode())
		<-ctx.Done()
		return nil
	},
}

func screenJump(name string, jump func(*cursor.Engine) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Move the cursor to the %s screen", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := monitor.Snapshot()
			if err != nil {
				return err
			}
			engine := cursor.New(layout, hook.New(), cursor.WithLogger(slog.Default()))
			return jump(engine)
		},
	}
}

func init() {
	cursorRunCmd.Flags().StringVar(&cursorModeFlag, "mode", "", "Initial mode: free, sticky or lock (default from config)")

	cursorCmd.AddCommand(cursorRunCmd)
	cursorCmd.AddCommand(screenJump("next", (*cursor.Engine).CursorToNextScreen))
	cursorCmd.AddCommand(screenJump("prev", (*cursor.Engine).CursorToPrevScreen))
	cursorCmd.AddCommand(screenJump("primary", (*cursor.Engine).CursorToPrimaryScreen))
	rootCmd.AddCommand(cursorCmd)
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// startCursor builds the engine from the loaded configuration, applies
// the default mode and keeps hotkeys and the monitor layout live until
// ctx is done
func startCursor(ctx context.Context) (*cursor.Engine, error) {
	monitors, err := monitor.ListMonitors()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("module", "cursor")

	engine := cursor.New(monitor.NewLayout(monitors), hook.New(),
		cursor.WithConfig(appConfig.EngineConfig()),
		cursor.WithLogger(logger),
		cursor.WithNotifier(notify.Notifier),
	)
	if err := engine.Start(); err != nil {
		// the engine stays usable in free mode
		logger.Warn("default mode not applied", "error", err)
	}

	keys := hotkey.NewManager(logger)
	bindings := append(hotkeyBindings(engine), windowBindings(appConfig.Window.Hotkeys)...)
	if err := keys.Register(bindings); err != nil {
		logger.Warn("some hotkeys are unavailable", "error", err)
	}
	go keys.Run(ctx)
	go watchDisplays(ctx, engine, monitors, logger)

	return engine, nil
}

// hotkeyBindings maps the configured combos onto engine commands
func hotkeyBindings(engine *cursor.Engine) []hotkey.Binding {
	keys := appConfig.Cursor.Hotkeys
	logged := func(name string, fn func() error) func() {
		return func() {
			if err := fn(); err != nil {
				slog.Warn("hotkey action failed", "name", name, "error", err)
			}
		}
	}
	return []hotkey.Binding{
		{Name: "free", Combo: keys.Free, Action: logged("free", engine.Free)},
		{Name: "sticky", Combo: keys.Sticky, Action: logged("sticky", engine.Sticky)},
		{Name: "lock", Combo: keys.Lock, Action: logged("lock", engine.Lock)},
		{Name: "next_screen", Combo: keys.NextScreen, Action: logged("next_screen", engine.CursorToNextScreen)},
		{Name: "prev_screen", Combo: keys.PrevScreen, Action: logged("prev_screen", engine.CursorToPrevScreen)},
		{Name: "primary_screen", Combo: keys.PrimaryScreen, Action: logged("primary_screen", engine.CursorToPrimaryScreen)},
	}
}

// watchDisplays polls the monitor layout and hands changes to the engine
func watchDisplays(ctx context.Context, engine *cursor.Engine, current []models.Monitor, logger *slog.Logger) {
	ticker := time.NewTicker(displayPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			monitors, err := monitor.ListMonitors()
			if err != nil {
				logger.Debug("monitor poll failed", "error", err)
				continue
			}
			if slices.Equal(monitors, current) {
				continue
			}
			logger.Info("display layout changed", "monitors", len(monitors))
			current = monitors
			engine.DisplayChanged(monitor.NewLayout(monitors))
		}
	}
}
