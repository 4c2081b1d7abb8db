package llm

import "strings"

// TrimFences strips markdown code fences some models wrap around JSON
// output despite being asked not to.
func TrimFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
