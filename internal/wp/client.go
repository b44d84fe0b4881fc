package wp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// mobileUserAgent is sent on comment submissions. Several WAF and
// anti-spam setups reject POSTs with non-browser user agents, so the
// client identifies itself as a mobile browser.
const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

// postFields limits the posts response to the fields the reader decodes.
const postFields = "id,date,title,content,featured_media,_links,_embedded"

// Client talks to a WordPress site's wp/v2 REST API. It applies no
// timeout of its own and never retries; failed requests surface
// immediately to the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for a base URL like
// "https://example.com/wp-json/wp/v2".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Categories fetches the site's category list (capped at 100).
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	body, _, err := c.get(ctx, "/categories", url.Values{"per_page": {"100"}})
	if err != nil {
		return nil, err
	}
	var cats []Category
	if err := json.Unmarshal(body, &cats); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}
	return cats, nil
}

// PostQuery selects a page of posts. CategoryID 0 means no category
// filter; an empty Search means no search filter.
type PostQuery struct {
	Page       int
	PerPage    int
	CategoryID int
	Search     string
}

// PostsPage is one page of decoded posts. TotalPages echoes the
// X-WP-TotalPages response header; it is advisory only and callers must
// not treat it as authoritative.
type PostsPage struct {
	Posts      []Post
	TotalPages int
}

// Posts fetches one page of posts with embedded media and link data.
func (c *Client) Posts(ctx context.Context, q PostQuery) (*PostsPage, error) {
	params := url.Values{
		"per_page": {strconv.Itoa(q.PerPage)},
		"page":     {strconv.Itoa(q.Page)},
		"_embed":   {"true"},
		"_fields":  {postFields},
	}
	if q.CategoryID != 0 {
		params.Set("categories", strconv.Itoa(q.CategoryID))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		params.Set("search", s)
	}

	body, header, err := c.get(ctx, "/posts", params)
	if err != nil {
		return nil, err
	}

	posts, err := DecodePosts(body)
	if err != nil {
		return nil, err
	}

	page := &PostsPage{Posts: posts}
	if tp, err := strconv.Atoi(header.Get("X-WP-TotalPages")); err == nil {
		page.TotalPages = tp
	}
	return page, nil
}

// Comments fetches a post's comments in ascending date order (capped at
// 100).
func (c *Client) Comments(ctx context.Context, postID int) ([]Comment, error) {
	params := url.Values{
		"post":     {strconv.Itoa(postID)},
		"per_page": {"100"},
		"orderby":  {"date"},
		"order":    {"asc"},
	}
	body, _, err := c.get(ctx, "/comments", params)
	if err != nil {
		return nil, err
	}
	var comments []Comment
	if err := json.Unmarshal(body, &comments); err != nil {
		return nil, fmt.Errorf("decoding comments: %w", err)
	}
	return comments, nil
}

// NewComment is the body of a comment submission.
type NewComment struct {
	Post        int    `json:"post"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
}

// CreateComment submits a comment. A nil error means the server accepted
// it (201); any other status comes back as a *StatusError carrying the
// response body.
func (c *Client) CreateComment(ctx context.Context, nc NewComment) error {
	payload, err := json.Marshal(nc)
	if err != nil {
		return fmt.Errorf("encoding comment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/comments", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", mobileUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{Code: resp.StatusCode, Body: body}
	}
	return nil
}

// get performs a GET against an API path and returns the body and
// response headers. Non-2xx responses become *StatusError.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, http.Header, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, &StatusError{Code: resp.StatusCode, Body: body}
	}

	slog.Debug("api request", "path", path, "status", resp.StatusCode)
	return body, resp.Header, nil
}

// decodeErrorMessage pulls the message out of a WordPress error body such
// as {"code":"...","message":"...","data":{...}}.
func decodeErrorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Message
}
