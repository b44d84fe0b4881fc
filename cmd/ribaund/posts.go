package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ribaund/reader/internal/htmltext"
	"github.com/ribaund/reader/internal/service"
	"github.com/ribaund/reader/internal/wp"
)

var (
	flagCategory int
	flagSearch   string
	flagPages    int
	flagRefresh  bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts, optionally filtered by category or search term",
	RunE:  runPosts,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the site's categories",
	RunE:  runCategories,
}

var readCmd = &cobra.Command{
	Use:   "read <post-id>",
	Short: "Show a post's full text and its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func init() {
	rootCmd.AddCommand(postsCmd, categoriesCmd, readCmd)

	postsCmd.Flags().IntVarP(&flagCategory, "category", "c", 0, "Category id (0 = all)")
	postsCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Search term")
	postsCmd.Flags().IntVar(&flagPages, "pages", 1, "Number of pages to load")
	postsCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Bypass the in-memory cache")
}

func runPosts(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc.FetchPosts(ctx, flagCategory, flagSearch, flagRefresh)

	for p := 1; p < flagPages; p++ {
		svc.LoadNextPage(ctx)
	}

	st := svc.Snapshot()
	if st.LastError != "" {
		return fmt.Errorf("%s", st.LastError)
	}

	for _, p := range st.Posts {
		printPostRow(p)
	}
	if st.CanLoadMore {
		fmt.Printf("\nMore posts available (loaded %d page(s)); use --pages to load more.\n", st.CurrentPage)
	}
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	svc.FetchCategories(cmd.Context())
	for _, c := range svc.Snapshot().Categories {
		fmt.Printf("%4d  %s\n", c.ID, c.Name)
	}
	return nil
}

func runRead(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	post, err := findPost(ctx, svc, args[0])
	if err != nil {
		return err
	}

	fmt.Println(postTitle(*post))
	fmt.Println(htmltext.FormatDate(post.Date))
	if url, ok := post.DetailImageURL(); ok {
		fmt.Printf("Image: %s\n", url)
	}
	fmt.Println()
	if post.Content != nil {
		fmt.Println(htmltext.FormatContent(post.Content.Rendered))
	} else {
		fmt.Println("(no content)")
	}

	svc.FetchComments(ctx, post.ID)
	comments := svc.Snapshot().Comments[post.ID]
	fmt.Printf("\nComments (%d)\n", len(comments))
	for _, c := range comments {
		fmt.Printf("  %s - %s\n    %s\n", c.AuthorName, htmltext.FormatDate(c.Date), htmltext.StripHTML(c.Content.Rendered))
	}
	return nil
}

func printPostRow(p wp.Post) {
	row := fmt.Sprintf("%6d  %s  %s", p.ID, htmltext.FormatDate(p.Date), postTitle(p))
	if p.CommentCount != nil {
		row += fmt.Sprintf("  [%d comments]", *p.CommentCount)
	}
	fmt.Println(row)
}

func postTitle(p wp.Post) string {
	if p.Title == nil {
		return "(untitled)"
	}
	return htmltext.StripHTML(p.Title.Rendered)
}

// findPost pages through the feed looking for a post id, scanning a
// bounded number of pages before giving up.
func findPost(ctx context.Context, svc *service.Service, rawID string) (*wp.Post, error) {
	var id int
	if _, err := fmt.Sscanf(rawID, "%d", &id); err != nil {
		return nil, fmt.Errorf("invalid post id %q", rawID)
	}

	svc.FetchPosts(ctx, 0, "", false)
	const maxPages = 10
	for page := 0; page < maxPages; page++ {
		st := svc.Snapshot()
		for i := range st.Posts {
			if st.Posts[i].ID == id {
				return &st.Posts[i], nil
			}
		}
		if !st.CanLoadMore {
			break
		}
		svc.LoadNextPage(ctx)
	}
	return nil, fmt.Errorf("post %d not found in the latest %d pages", id, maxPages)
}
