package main

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/ribaund/reader/internal/config"
)

var openCmd = &cobra.Command{
	Use:       "open <config|data>",
	Short:     "Open the config file or data directory",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"config", "data"},
	RunE:      runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "config":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// Write the defaults so there is something to edit.
			if err := config.Default().Save(); err != nil {
				return err
			}
		}
		return browser.OpenFile(path)
	case "data":
		dir, err := config.DataDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
		return browser.OpenFile(dir)
	default:
		return fmt.Errorf("unknown target %q (expected config or data)", args[0])
	}
}
