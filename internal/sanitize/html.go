package sanitize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockTags are elements whose text should land on its own line, so that
// HTML mail converts into something the line-based segmenter can work with.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "section": true, "article": true,
}

// HTMLToText converts an HTML document (typically a pasted email body) to
// line-oriented plain text. Script, style, iframe and head subtrees are
// dropped; block elements each produce a line; runs of blank lines
// collapse to one.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, iframe, head, noscript").Remove()

	var sb strings.Builder
	doc.Find("body").Each(func(_ int, body *goquery.Selection) {
		body.Find("*").Each(func(_ int, sel *goquery.Selection) {
			if !blockTags[goquery.NodeName(sel)] {
				return
			}
			line := strings.TrimSpace(collapseSpace(sel.Text()))
			if sel.Children().FilterFunction(func(_ int, c *goquery.Selection) bool {
				return blockTags[goquery.NodeName(c)]
			}).Length() > 0 {
				// Nested blocks emit their own lines.
				return
			}
			if line != "" {
				sb.WriteString(line)
			}
			sb.WriteString("\n")
		})
	})

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		// No block structure; fall back to the document's flat text.
		out = strings.TrimSpace(collapseSpace(doc.Text()))
	}
	return collapseBlankLines(out), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
