package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ribaund/reader/internal/service"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Interactive search: type a query per line, results follow once typing pauses",
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, cfg, err := newService()
	if err != nil {
		return err
	}

	svc.Subscribe(func(st service.State) {
		if st.IsLoading {
			return
		}
		if st.LastError != "" {
			fmt.Printf("error: %s\n", st.LastError)
			return
		}
		fmt.Printf("-- %d result(s) for %q --\n", len(st.Posts), st.SearchText)
		for _, p := range st.Posts {
			printPostRow(p)
		}
	})

	delay := time.Duration(cfg.Feed.SearchDelayMS) * time.Millisecond
	searcher := service.NewSearcher(cmd.Context(), svc, delay)

	fmt.Println("Type a search query and press enter (Ctrl-D to quit):")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		searcher.SetQuery(scanner.Text())
	}

	// Let a pending debounced search fire before exiting.
	time.Sleep(delay + 100*time.Millisecond)
	return scanner.Err()
}
