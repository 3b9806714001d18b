package llm

import "strings"

// CleanJSONBlock strips the markdown code fences models often wrap around
// JSON output, even when instructed to return bare JSON. Text without fences
// is returned trimmed and otherwise untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")

	// Drop a language identifier such as "json" on the opening fence.
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := strings.TrimSpace(text[:idx])
		if first == "" || (len(first) < 20 && !strings.ContainsAny(first, " {")) {
			text = text[idx+1:]
		}
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}

	return strings.TrimSpace(text)
}
