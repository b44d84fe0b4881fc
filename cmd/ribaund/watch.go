package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ribaund/reader/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the feed fresh: refetch posts on the configured interval",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc, cfg, err := newService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc.FetchCategories(ctx)
	svc.FetchPosts(ctx, 0, "", false)

	st := svc.Snapshot()
	if st.LastError != "" {
		return fmt.Errorf("%s", st.LastError)
	}
	fmt.Printf("Loaded %d posts; refreshing every %d minutes.\n", len(st.Posts), cfg.Refresh.IntervalMinutes)

	sched, err := scheduler.New(cfg.Refresh.Timezone)
	if err != nil {
		return err
	}
	err = sched.AddRefreshJob(cfg.Refresh.IntervalMinutes, func(jobCtx context.Context) error {
		svc.FetchPosts(jobCtx, 0, "", true)
		st := svc.Snapshot()
		if st.LastError != "" {
			return fmt.Errorf("%s", st.LastError)
		}
		slog.Info("feed refreshed", "posts", len(st.Posts))
		return nil
	})
	if err != nil {
		return err
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	if next, ok := sched.NextRun("refresh"); ok {
		slog.Info("watching", "next_refresh", next)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println("\nStopping.")
	return nil
}
