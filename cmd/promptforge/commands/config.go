package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/promptforge/config"
	"github.com/teranos/promptforge/errors"
)

// ConfigCmd groups configuration subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize configuration",
	Long: `config — Inspect or initialize configuration

promptforge reads promptforge.toml from the nearest ancestor directory and
PROMPTFORGE_* environment variables on top of built-in defaults.

Examples:
  promptforge config init    # write a starter promptforge.toml here
  promptforge config show    # print the effective configuration`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter promptforge.toml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(config.ConfigFileName); err != nil {
			return err
		}
		pterm.Success.Printf("Wrote %s\n", config.ConfigFileName)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		out, err := config.Render(cfg)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}
