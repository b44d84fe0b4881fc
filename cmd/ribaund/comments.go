package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ribaund/reader/internal/htmltext"
)

var (
	flagAuthorName  string
	flagAuthorEmail string
	flagMessage     string
)

var commentsCmd = &cobra.Command{
	Use:   "comments <post-id>",
	Short: "List a post's comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runComments,
}

var commentCmd = &cobra.Command{
	Use:   "comment <post-id>",
	Short: "Submit a comment on a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runComment,
}

func init() {
	rootCmd.AddCommand(commentsCmd, commentCmd)

	commentCmd.Flags().StringVar(&flagAuthorName, "name", "", "Your name")
	commentCmd.Flags().StringVar(&flagAuthorEmail, "email", "", "Your email (not published)")
	commentCmd.Flags().StringVarP(&flagMessage, "message", "m", "", "Comment text")
	commentCmd.MarkFlagRequired("name")
	commentCmd.MarkFlagRequired("email")
	commentCmd.MarkFlagRequired("message")
}

func runComments(cmd *cobra.Command, args []string) error {
	postID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}

	svc, _, err := newService()
	if err != nil {
		return err
	}

	svc.FetchComments(cmd.Context(), postID)
	comments := svc.Snapshot().Comments[postID]
	if len(comments) == 0 {
		fmt.Println("No comments yet.")
		return nil
	}
	for _, c := range comments {
		fmt.Printf("%s - %s\n  %s\n\n", c.AuthorName, htmltext.FormatDate(c.Date), htmltext.StripHTML(c.Content.Rendered))
	}
	return nil
}

func runComment(cmd *cobra.Command, args []string) error {
	postID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}

	svc, _, err := newService()
	if err != nil {
		return err
	}

	result := svc.PostComment(cmd.Context(), postID, flagAuthorName, flagAuthorEmail, flagMessage)
	fmt.Println(result.Message)
	if !result.OK {
		return fmt.Errorf("comment was not accepted")
	}
	return nil
}
