package cmd

import (
	"fmt"
	"strings"

	"github.com/kartoza/dual-monitor-tools/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			fmt.Println(configPath)
			return
		}
		fmt.Println(config.GetConfigPath())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <module>[.<setting>]",
	Short: "Print a setting, or every setting of a module",
	Long: `Print configuration values by module and setting name.

Modules: cursor, wallpaper, logging

Example:
  dmt config get cursor.min_sticky_force
  dmt config get wallpaper`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, name, found := strings.Cut(args[0], ".")
		if found {
			v, err := appConfig.Setting(module, name)
			if err != nil {
				return err
			}
			fmt.Println(string(v))
			return nil
		}

		names, err := appConfig.SettingNames(module)
		if err != nil {
			return err
		}
		for _, n := range names {
			v, err := appConfig.Setting(module, n)
			if err != nil {
				return err
			}
			fmt.Printf("%s.%s = %s\n", module, n, v)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration, with defaults filled in",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := saveConfig(); err != nil {
			return err
		}
		fmt.Println("Configuration saved")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
