package htmltext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"simple tags", "<p>hello <b>world</b></p>", "hello world"},
		{"entities", "Fish &amp; Chips &#8217;s &#8220;best&#8221;", `Fish & Chips 's "best"`},
		{"ellipsis and quote", "wait&#8230; &quot;now&quot;", `wait… "now"`},
		{"nbsp", "a&nbsp;b", "a b"},
		{"surrounding whitespace", "  <p> hi </p>  ", "hi"},
		{"attributes", `<a href="https://x.test" rel="nofollow">link</a>`, "link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestStripHTMLIdempotent(t *testing.T) {
	inputs := []string{
		"<p>hello <b>world</b></p>",
		"Fish &amp; Chips",
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"plain",
		"<div><span>nested</span></div> &#8220;q&#8221;",
		// Double-encoded entities must fully decode in one application.
		"&amp;quot;hi&amp;quot;",
		"can&amp;#8217;t",
		"a&amp;nbsp;b",
	}
	for _, in := range inputs {
		once := StripHTML(in)
		assert.Equal(t, once, StripHTML(once), "input %q", in)
	}
}

func TestStripHTMLDoubleEncoded(t *testing.T) {
	assert.Equal(t, `"hi"`, StripHTML("&amp;quot;hi&amp;quot;"))
	assert.Equal(t, "can't", StripHTML("can&amp;#8217;t"))
	assert.Equal(t, "a b", StripHTML("a&amp;nbsp;b"))
}

func TestFormatContent(t *testing.T) {
	html := `<p>First paragraph with <strong>bold</strong>.</p>` +
		`<h2>Heading</h2>` +
		`<p>Second&nbsp;paragraph.</p>` +
		`<ul><li>one</li><li>two</li></ul>` +
		`<figure><img src="x.jpg"></figure>`

	got := FormatContent(html)

	assert.Contains(t, got, "First paragraph with bold.")
	assert.Contains(t, got, "Heading")
	assert.Contains(t, got, "Second paragraph.")
	assert.Contains(t, got, "• one")
	assert.Contains(t, got, "• two")

	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.NotContains(t, got, "\n\n\n")
	assert.False(t, strings.HasPrefix(got, "\n"))
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestFormatContentLineBreaks(t *testing.T) {
	got := FormatContent("<p>a</p><p>b</p><br/><div>c</div>")
	assert.NotContains(t, got, "\n\n\n")
	assert.Contains(t, got, "a\n\nb")
}

func TestFormatContentEntities(t *testing.T) {
	got := FormatContent("2 &lt; 3 &amp;&amp; 4 &gt; 1")
	assert.Equal(t, "2 < 3 && 4 > 1", got)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rfc3339 utc", "2025-11-20T14:30:00Z", "Nov 20, 2025 2:30 PM"},
		{"rfc3339 offset", "2025-11-20T14:30:00+03:00", "Nov 20, 2025 2:30 PM"},
		{"fractional seconds", "2025-11-20T14:30:00.123Z", "Nov 20, 2025 2:30 PM"},
		{"no offset fallback", "2025-11-20T14:30:00", "Nov 20, 2025 2:30 PM"},
		{"garbage", "not a date", UnknownDate},
		{"empty", "", UnknownDate},
		{"date only", "2025-11-20", UnknownDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}
