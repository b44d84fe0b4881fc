package wp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePostMinimal(t *testing.T) {
	// title, content, featured_media, _embedded and _links can all be
	// absent; only id and date are required.
	p, err := DecodePost([]byte(`{"id": 42, "date": "2025-11-20T14:30:00"}`))
	require.NoError(t, err)

	assert.Equal(t, 42, p.ID)
	assert.Equal(t, "2025-11-20T14:30:00", p.Date)
	assert.Nil(t, p.Title)
	assert.Nil(t, p.Content)
	assert.Nil(t, p.FeaturedMediaID)
	assert.Nil(t, p.CommentCount)

	_, ok := p.RowImageURL()
	assert.False(t, ok)
	_, ok = p.DetailImageURL()
	assert.False(t, ok)
}

func TestDecodePostRequiredFields(t *testing.T) {
	_, err := DecodePost([]byte(`{"date": "2025-11-20T14:30:00"}`))
	assert.Error(t, err, "missing id must fail the record")

	_, err = DecodePost([]byte(`{"id": 42}`))
	assert.Error(t, err, "missing date must fail the record")
}

func TestDecodePostCommentCount(t *testing.T) {
	p, err := DecodePost([]byte(`{
		"id": 1, "date": "2025-11-20T14:30:00",
		"_links": {"replies": [{"count": 7, "href": "x"}]}
	}`))
	require.NoError(t, err)
	require.NotNil(t, p.CommentCount)
	assert.Equal(t, 7, *p.CommentCount)

	p, err = DecodePost([]byte(`{
		"id": 2, "date": "2025-11-20T14:30:00",
		"_links": {"replies": []}
	}`))
	require.NoError(t, err)
	assert.Nil(t, p.CommentCount, "empty reply-link array leaves the count unset")
}

func TestDecodePostsDropsMalformed(t *testing.T) {
	posts, err := DecodePosts([]byte(`[
		{"id": 1, "date": "2025-11-20T14:30:00"},
		{"title": {"rendered": "no id"}},
		{"id": 3, "date": "2025-11-21T09:00:00"}
	]`))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, 1, posts[0].ID)
	assert.Equal(t, 3, posts[1].ID)
}

func TestDecodePostsNotArray(t *testing.T) {
	_, err := DecodePosts([]byte(`{"message": "rest_invalid_param"}`))
	assert.Error(t, err)
}

func postWithMedia(sizes, source string) Post {
	m := FeaturedMedia{SourceURL: source}
	if sizes != "" {
		ms := &MediaSizes{}
		f := &MediaFile{SourceURL: sizes}
		switch sizes {
		case "medium.jpg":
			ms.Medium = f
		case "thumb.jpg":
			ms.Thumbnail = f
		case "full.jpg":
			ms.Full = f
		}
		m.MediaDetails = &MediaDetails{Sizes: ms}
	}
	return Post{ID: 1, Date: "2025-11-20T14:30:00", Embedded: &Embedded{FeaturedMedia: []FeaturedMedia{m}}}
}

func TestRowImageURLFallbacks(t *testing.T) {
	p := postWithMedia("medium.jpg", "raw.jpg")
	url, ok := p.RowImageURL()
	assert.True(t, ok)
	assert.Equal(t, "medium.jpg", url, "medium preferred")

	p = postWithMedia("thumb.jpg", "raw.jpg")
	url, ok = p.RowImageURL()
	assert.True(t, ok)
	assert.Equal(t, "thumb.jpg", url, "thumbnail when no medium")

	p = postWithMedia("", "raw.jpg")
	url, ok = p.RowImageURL()
	assert.True(t, ok)
	assert.Equal(t, "raw.jpg", url, "media source_url as last resort")

	p = postWithMedia("", "")
	_, ok = p.RowImageURL()
	assert.False(t, ok, "no usable URL yields no value, not an error")
}

func TestDetailImageURLFallbacks(t *testing.T) {
	p := postWithMedia("full.jpg", "raw.jpg")
	url, ok := p.DetailImageURL()
	assert.True(t, ok)
	assert.Equal(t, "full.jpg", url, "full preferred")

	// Detail resolution skips medium/thumbnail entirely.
	p = postWithMedia("medium.jpg", "raw.jpg")
	url, ok = p.DetailImageURL()
	assert.True(t, ok)
	assert.Equal(t, "raw.jpg", url)

	p = postWithMedia("", "")
	_, ok = p.DetailImageURL()
	assert.False(t, ok)
}

func TestDecodePostFullGraph(t *testing.T) {
	p, err := DecodePost([]byte(`{
		"id": 9,
		"date": "2025-11-20T14:30:00",
		"title": {"rendered": "Başlık &amp; daha"},
		"content": {"rendered": "<p>gövde</p>"},
		"featured_media": 55,
		"_embedded": {
			"wp:featuredmedia": [{
				"source_url": "https://img.test/raw.jpg",
				"media_details": {
					"sizes": {
						"thumbnail": {"source_url": "https://img.test/t.jpg"},
						"medium": {"source_url": "https://img.test/m.jpg"},
						"full": {"source_url": "https://img.test/f.jpg"}
					}
				}
			}]
		},
		"_links": {"replies": [{"count": 3}]}
	}`))
	require.NoError(t, err)

	require.NotNil(t, p.Title)
	assert.Equal(t, "Başlık &amp; daha", p.Title.Rendered)
	require.NotNil(t, p.FeaturedMediaID)
	assert.Equal(t, 55, *p.FeaturedMediaID)

	url, ok := p.RowImageURL()
	assert.True(t, ok)
	assert.Equal(t, "https://img.test/m.jpg", url)

	url, ok = p.DetailImageURL()
	assert.True(t, ok)
	assert.Equal(t, "https://img.test/f.jpg", url)
}
