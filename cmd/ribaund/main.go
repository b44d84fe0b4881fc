// Command ribaund is a terminal client for the Ribaund news site: it
// browses, searches and paginates posts through the WordPress REST API,
// and manages local favorites.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/ribaund/reader/internal/config"
	"github.com/ribaund/reader/internal/service"
	"github.com/ribaund/reader/internal/store"
	"github.com/ribaund/reader/internal/wp"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "ribaund",
	Short: "Read, search and favorite posts from the Ribaund news site",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService builds the content service from the on-disk config.
func newService() (*service.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	client := wp.NewClient(cfg.Site.BaseURL)
	return service.New(client, cfg.Feed.PostsPerPage), cfg, nil
}

// openStore opens the local favorites/settings database.
func openStore() (*store.Store, error) {
	path, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	return store.New(path)
}
