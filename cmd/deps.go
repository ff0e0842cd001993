package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/dual-monitor-tools/internal/deps"
	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check platform support and helper programs",
	Long:  `Report which features work on this machine and which optional helper programs are installed.`,
	Run: func(cmd *cobra.Command, args []string) {
		capabilities, optional := deps.CheckAll()

		// Colors
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("#E95420"))
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))
		cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("#00BCD4"))
		bold := lipgloss.NewStyle().Bold(true)

		fmt.Println()
		fmt.Printf("%s %s\n\n", bold.Render("Display Server:"), cyan.Render(deps.GetDisplayServerName()))

		fmt.Println(bold.Render("Capabilities:"))
		fmt.Println()

		allOk := true
		for _, c := range capabilities {
			var status string
			if c.Available {
				status = green.Render("✓")
			} else {
				status = red.Render("✗")
				allOk = false
			}
			fmt.Printf("  %s %s\n", status, bold.Render(c.Name))
			fmt.Printf("    %s\n", gray.Render(c.Description))
			if c.Detail != "" {
				fmt.Printf("    %s\n", c.Detail)
			}
			fmt.Println()
		}

		fmt.Println(bold.Render("Optional Dependencies:"))
		fmt.Println()

		for _, r := range optional {
			var status string
			if r.Available {
				status = green.Render("✓")
			} else {
				status = gray.Render("○")
			}
			fmt.Printf("  %s %s\n", status, bold.Render(r.Dependency.Name))
			fmt.Printf("    %s\n", gray.Render(r.Dependency.Description))
			if r.Available {
				fmt.Printf("    Path: %s\n", r.Path)
			}
			fmt.Println()
		}

		if allOk {
			fmt.Println(green.Render("Everything is supported on this machine!"))
		} else {
			fmt.Println(red.Render("Some features are unavailable here."))
			fmt.Println("Cursor modes other than free need the input hook; wallpapers can still be composed to a file.")
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
