package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kartoza/dual-monitor-tools/internal/config"
	"github.com/kartoza/dual-monitor-tools/internal/hotkey"
	"github.com/kartoza/dual-monitor-tools/internal/monitor"
	"github.com/kartoza/dual-monitor-tools/internal/window"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window <action>",
	Short: "Move or resize the active window",
	Long: `Act on the window that has the focus.

Actions:
  next, prev             move to the next or previous screen, keeping its place
  snap-left, snap-right  fill the left or right half of its screen
  maximise               toggle maximised
  minimise               minimise`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: windowActionNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := window.ParseAction(args[0])
		if err != nil {
			return err
		}
		return runWindowAction(action)
	},
}

func init() {
	rootCmd.AddCommand(windowCmd)
}

func windowActionNames() []string {
	var names []string
	for _, a := range window.Actions() {
		names = append(names, a.String())
	}
	return names
}

// runWindowAction applies action against the current monitor layout
func runWindowAction(action window.Action) error {
	if !window.Supported() {
		return window.ErrUnsupported
	}
	layout, err := monitor.Snapshot()
	if err != nil {
		return err
	}
	if err := window.Apply(action, layout); err != nil {
		return fmt.Errorf("window %s: %w", action, err)
	}
	return nil
}

// windowBindings maps the configured combos onto window actions
func windowBindings(keys config.WindowHotkeys) []hotkey.Binding {
	combos := map[window.Action]string{
		window.NextScreen: keys.NextScreen,
		window.PrevScreen: keys.PrevScreen,
		window.SnapLeft:   keys.SnapLeft,
		window.SnapRight:  keys.SnapRight,
		window.Maximise:   keys.Maximise,
		window.Minimise:   keys.Minimise,
	}
	var bindings []hotkey.Binding
	for _, a := range window.Actions() {
		name := "window_" + strings.ReplaceAll(a.String(), "-", "_")
		bindings = append(bindings, hotkey.Binding{
			Name:  name,
			Combo: combos[a],
			Action: func() {
				if err := runWindowAction(a); err != nil {
					slog.Warn("hotkey action failed", "name", name, "error", err)
				}
			},
		})
	}
	return bindings
}
