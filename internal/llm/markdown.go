package llm

import "strings"

// cleanMarkdownWrapper strips a ``` or ```json fence wrapped around the whole
// reply. Anything else is returned unchanged.
func cleanMarkdownWrapper(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return content
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "```"), "```")
	newline := strings.IndexByte(inner, '\n')
	if newline < 0 {
		return content
	}

	// Drop the info string (e.g. "json") on the opening fence line.
	if tag := strings.TrimSpace(inner[:newline]); tag != "" && strings.ContainsAny(tag, "{[\"") {
		return content
	}

	return strings.TrimSpace(inner[newline+1:])
}
