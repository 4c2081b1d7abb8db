// Package sanitize performs input hygiene on user-supplied text before it
// reaches the model pipeline.
package sanitize

import (
	"regexp"
	"strings"
)

// This is a best-effort defense against pasted markup, not a full HTML
// sanitizer: it strips the script-bearing constructs that matter for
// prompt injection and leaves everything else intact.
var (
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	iframeRe = regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`)
	schemeRe = regexp.MustCompile(`(?i)(?:javascript|data|vbscript):`)
)

// Clean removes script and iframe blocks (including their content),
// neutralizes javascript:, data: and vbscript: URI schemes, and trims
// surrounding whitespace. It never fails and always returns a string,
// possibly empty.
func Clean(text string) string {
	text = scriptRe.ReplaceAllString(text, "")
	text = iframeRe.ReplaceAllString(text, "")
	text = schemeRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
