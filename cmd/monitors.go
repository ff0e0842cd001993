package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kartoza/dual-monitor-tools/internal/hook"
	"github.com/kartoza/dual-monitor-tools/internal/models"
	"github.com/kartoza/dual-monitor-tools/internal/monitor"
	"github.com/spf13/cobra"
)

var monitorsJsonOutput bool

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List available monitors",
	Long:  `List all available monitors with their resolution and position on the virtual desktop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		monitors, err := monitor.ListMonitors()
		if err != nil {
			return fmt.Errorf("failed to list monitors: %w", err)
		}

		if p, err := hook.New().CursorPos(); err == nil {
			if m, err := monitor.GetMouseMonitor(monitors, models.CursorPosition{X: p.X, Y: p.Y}); err == nil {
				m.Focused = true
			}
		}

		if monitorsJsonOutput {
			data, err := json.MarshalIndent(monitors, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		for _, m := range monitors {
			mark := ""
			if m.Primary {
				mark += " (primary)"
			}
			if m.Focused {
				mark += " (cursor)"
			}
			fmt.Printf("%d %s: %dx%d at (%d,%d)%s\n",
				m.Index+1, m.Name, m.Width(), m.Height(), m.Bounds.Min.X, m.Bounds.Min.Y, mark)
		}

		layout := monitor.NewLayout(monitors)
		v := layout.VirtualBounds()
		fmt.Printf("desktop: %dx%d at (%d,%d)\n", v.Dx(), v.Dy(), v.Min.X, v.Min.Y)
		return nil
	},
}

func init() {
	monitorsCmd.Flags().BoolVar(&monitorsJsonOutput, "json", false, "Output monitors as JSON")
}
