package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ribaund/reader/internal/wp"
)

// CommentResult is the outcome of a comment submission. The message is
// meant to be rendered inline in the comment form, so submissions never
// return an error: every failure mode maps to a displayable string.
type CommentResult struct {
	OK      bool
	Message string
}

const (
	commentPendingMessage = "Your comment was submitted and will appear once the site moderators approve it."

	// Rejections with 401/403 are almost never about the reader's input;
	// the message names the usual server-side culprits so a site operator
	// reading a screenshot can act on it.
	commentRejectedMessage = "The site refused the comment submission. This usually means comments are disabled for this post, or a comment/security plugin (or the site's web application firewall) blocked the request. The site administrator should check the discussion settings and any security plugin logs."

	commentBadRequestMessage = "The server could not process the comment (bad request)."
	commentNetworkMessage    = "Could not reach the server. Check your internet connection and try again."
)

// PostComment submits a new comment and classifies the outcome by status
// code. On acceptance the post's comment list is refetched immediately so
// the caller sees any comments that skipped moderation.
func (s *Service) PostComment(ctx context.Context, postID int, authorName, authorEmail, content string) CommentResult {
	err := s.client.CreateComment(ctx, wp.NewComment{
		Post:        postID,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Content:     content,
	})
	if err == nil {
		s.FetchComments(ctx, postID)
		return CommentResult{OK: true, Message: commentPendingMessage}
	}

	var se *wp.StatusError
	if !errors.As(err, &se) {
		return CommentResult{Message: commentNetworkMessage}
	}

	switch se.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return CommentResult{Message: commentRejectedMessage}
	case http.StatusBadRequest:
		if msg, ok := se.ErrorMessage(); ok {
			return CommentResult{Message: msg}
		}
		return CommentResult{Message: commentBadRequestMessage}
	default:
		return CommentResult{Message: fmt.Sprintf("The server rejected the comment (status %d).", se.Code)}
	}
}
