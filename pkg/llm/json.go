package llm

import (
	"strings"
)

// CleanResponse strips a markdown code fence (with optional language tag) from a
// model response. Models routinely wrap JSON in ```json ... ``` even when told
// not to, so every JSON-expecting caller runs its response through here first.
func CleanResponse(response string) string {
	response = strings.TrimSpace(response)
	if !strings.HasPrefix(response, "```") {
		return response
	}
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	if idx := strings.LastIndex(response, "```"); idx >= 0 {
		response = response[:idx]
	}
	return strings.TrimSpace(response)
}

// ExtractObject returns the outermost {...} in a cleaned response, or "" when
// no object is present. Prose before or after the object is discarded.
func ExtractObject(response string) string {
	return extractDelimited(CleanResponse(response), '{', '}')
}

// ExtractArray returns the outermost [...] in a cleaned response, or "".
func ExtractArray(response string) string {
	return extractDelimited(CleanResponse(response), '[', ']')
}

func extractDelimited(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
