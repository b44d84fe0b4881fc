// Package wp contains the WordPress REST API types, the tolerant decoder
// for the post/media/link graph, and the HTTP client for the site's
// wp-json/wp/v2 endpoints.
package wp

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Category is a post category as served by /categories.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RenderedText is the API's rich-text wrapper: an object whose rendered
// field carries raw HTML.
type RenderedText struct {
	Rendered string `json:"rendered"`
}

// Post is a single decoded post. ID and Date are always present; every
// other field can legitimately be absent from the API response, so
// consumers must handle nil. Posts are value objects: decoded once, never
// mutated.
type Post struct {
	ID              int           `json:"id"`
	Date            string        `json:"date"`
	Title           *RenderedText `json:"title,omitempty"`
	Content         *RenderedText `json:"content,omitempty"`
	FeaturedMediaID *int          `json:"featured_media,omitempty"`
	Embedded        *Embedded     `json:"_embedded,omitempty"`

	// CommentCount is derived from _links.replies at decode time; nil
	// when the reply link array is missing or empty.
	CommentCount *int `json:"comment_count,omitempty"`
}

// Embedded holds the _embed side-loaded resources attached to a post.
type Embedded struct {
	FeaturedMedia []FeaturedMedia `json:"wp:featuredmedia"`
}

// FeaturedMedia is one element of the wp:featuredmedia array. Both the
// nested details and the direct source URL are optional.
type FeaturedMedia struct {
	SourceURL    string        `json:"source_url"`
	MediaDetails *MediaDetails `json:"media_details"`
}

// MediaDetails carries the size-keyed rendition map.
type MediaDetails struct {
	Sizes *MediaSizes `json:"sizes"`
}

// MediaSizes holds the renditions the reader cares about. WordPress emits
// more size keys; the rest are ignored.
type MediaSizes struct {
	Thumbnail *MediaFile `json:"thumbnail"`
	Medium    *MediaFile `json:"medium"`
	Full      *MediaFile `json:"full"`
}

// MediaFile is a single rendition.
type MediaFile struct {
	SourceURL string `json:"source_url"`
}

// Comment is a reader comment on a post.
type Comment struct {
	ID         int          `json:"id"`
	AuthorName string       `json:"author_name"`
	Date       string       `json:"date"`
	Content    RenderedText `json:"content"`
}

// featuredMedia returns the first embedded media element, if any.
func (p *Post) featuredMedia() *FeaturedMedia {
	if p.Embedded == nil || len(p.Embedded.FeaturedMedia) == 0 {
		return nil
	}
	return &p.Embedded.FeaturedMedia[0]
}

// RowImageURL resolves the image to show in a list row: the medium
// rendition, else the thumbnail, else the media item's own source URL.
// ok is false when the post has no usable image at all.
func (p *Post) RowImageURL() (url string, ok bool) {
	m := p.featuredMedia()
	if m == nil {
		return "", false
	}
	if m.MediaDetails != nil && m.MediaDetails.Sizes != nil {
		if s := m.MediaDetails.Sizes.Medium; s != nil && s.SourceURL != "" {
			return s.SourceURL, true
		}
		if s := m.MediaDetails.Sizes.Thumbnail; s != nil && s.SourceURL != "" {
			return s.SourceURL, true
		}
	}
	if m.SourceURL != "" {
		return m.SourceURL, true
	}
	return "", false
}

// DetailImageURL resolves the image for the detail screen: the full
// rendition, else the media item's own source URL.
func (p *Post) DetailImageURL() (url string, ok bool) {
	m := p.featuredMedia()
	if m == nil {
		return "", false
	}
	if m.MediaDetails != nil && m.MediaDetails.Sizes != nil {
		if s := m.MediaDetails.Sizes.Full; s != nil && s.SourceURL != "" {
			return s.SourceURL, true
		}
	}
	if m.SourceURL != "" {
		return m.SourceURL, true
	}
	return "", false
}

// postPayload mirrors the raw post object. Pointer fields distinguish
// "absent" from zero so required fields can be validated.
type postPayload struct {
	ID              *int          `json:"id"`
	Date            *string       `json:"date"`
	Title           *RenderedText `json:"title"`
	Content         *RenderedText `json:"content"`
	FeaturedMediaID *int          `json:"featured_media"`
	Embedded        *Embedded     `json:"_embedded"`
	Links           *postLinks    `json:"_links"`
}

type postLinks struct {
	Replies []replyLink `json:"replies"`
}

type replyLink struct {
	Count *int `json:"count"`
}

// DecodePost converts one raw JSON object into a Post. A missing id or
// date fails the record; every other field is optional.
func DecodePost(raw []byte) (Post, error) {
	var pl postPayload
	if err := json.Unmarshal(raw, &pl); err != nil {
		return Post{}, fmt.Errorf("decoding post: %w", err)
	}
	if pl.ID == nil {
		return Post{}, fmt.Errorf("decoding post: missing id")
	}
	if pl.Date == nil {
		return Post{}, fmt.Errorf("decoding post %d: missing date", *pl.ID)
	}

	p := Post{
		ID:              *pl.ID,
		Date:            *pl.Date,
		Title:           pl.Title,
		Content:         pl.Content,
		FeaturedMediaID: pl.FeaturedMediaID,
		Embedded:        pl.Embedded,
	}
	if pl.Links != nil && len(pl.Links.Replies) > 0 {
		p.CommentCount = pl.Links.Replies[0].Count
	}
	return p, nil
}

// DecodePosts decodes a posts response array element-wise. Malformed
// entries are dropped with a warning instead of failing the whole batch;
// a response that is not a JSON array fails outright.
func DecodePosts(raw []byte) ([]Post, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("decoding posts response: %w", err)
	}

	posts := make([]Post, 0, len(elems))
	for i, e := range elems {
		p, err := DecodePost(e)
		if err != nil {
			slog.Warn("dropping malformed post", "index", i, "error", err)
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}
