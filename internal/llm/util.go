// Package llm - util.go provides shared utilities for model response processing.
package llm

import "strings"

const codeFence = "```"

// CleanJSONBlock removes a Markdown code fence wrapping the whole response.
// Anything else is returned trimmed and unchanged: text before or after the
// fence, or around a bare JSON value, is left in place so that it fails JSON
// validation downstream.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, codeFence) || len(text) < 2*len(codeFence) || !strings.HasSuffix(text, codeFence) {
		return text
	}

	inner := text[len(codeFence) : len(text)-len(codeFence)]

	// Optional language identifier on the opening line (```json)
	if idx := strings.Index(inner, "\n"); idx >= 0 {
		if isFenceLanguage(inner[:idx]) {
			inner = inner[idx+1:]
		}
	} else if isFenceLanguage(inner) {
		return ""
	}

	return strings.TrimSpace(inner)
}

// isFenceLanguage reports whether line looks like an info string such as "json"
func isFenceLanguage(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) >= 20 {
		return false
	}
	return !strings.ContainsAny(line, " {[\"")
}
