// Package htmltext converts WordPress rendered-HTML fragments into plain
// text suitable for a text-only display. It is deliberately not a full HTML
// parser: the input is trusted rendered output from the site's own editor,
// and the only consumer is a read-only text view.
package htmltext

import (
	"regexp"
	"strings"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
	paragraphTags  = regexp.MustCompile(`</?p[^>]*>`)
	headingTags    = regexp.MustCompile(`</?h[1-6][^>]*>`)
	lineBreakTags  = regexp.MustCompile(`<br\s*/?>`)
	blockTags      = regexp.MustCompile(`</?div[^>]*>|</?span[^>]*>|</?figure[^>]*>`)
	listItemOpen   = regexp.MustCompile(`<li[^>]*>`)
	listStructure  = regexp.MustCompile(`</?ul[^>]*>|</?ol[^>]*>|</li>`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

type entityRule struct {
	from, to string
}

// stripEntityTable decodes the entities WordPress commonly emits in titles
// and excerpts. The rules apply sequentially with &amp; first, so
// double-encoded entities like &amp;quot; fully decode in one application;
// &lt;/&gt; are deliberately excluded so that StripHTML stays idempotent
// (decoded output must never contain new tag-shaped text).
var stripEntityTable = []entityRule{
	{"&amp;", "&"},
	{"&#8217;", "'"},
	{"&#8220;", `"`},
	{"&#8221;", `"`},
	{"&#8230;", "…"},
	{"&quot;", `"`},
	{"&nbsp;", " "},
}

var contentEntityTable = []entityRule{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&#8217;", "'"},
	{"&#8220;", `"`},
	{"&#8221;", `"`},
	{"&#8230;", "…"},
	{"&quot;", `"`},
	{"&nbsp;", " "},
}

func decodeEntities(s string, table []entityRule) string {
	for _, r := range table {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// StripHTML removes all tags from a rendered fragment, decodes common
// entities and trims surrounding whitespace. Applying it to already
// stripped text is a no-op.
func StripHTML(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = decodeEntities(out, stripEntityTable)
	return strings.TrimSpace(out)
}

// FormatContent turns a post body into readable plain text. Block-level
// tags are rewritten into line breaks before stripping so paragraph and
// list structure survives the conversion.
func FormatContent(html string) string {
	out := paragraphTags.ReplaceAllString(html, "\n\n")
	out = headingTags.ReplaceAllString(out, "\n")
	out = lineBreakTags.ReplaceAllString(out, "\n")
	out = blockTags.ReplaceAllString(out, "\n")
	out = listItemOpen.ReplaceAllString(out, "\n• ")
	out = listStructure.ReplaceAllString(out, "")

	out = tagPattern.ReplaceAllString(out, "")
	out = decodeEntities(out, contentEntityTable)

	out = excessNewlines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
