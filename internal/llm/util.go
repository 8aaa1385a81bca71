// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	return text
}

// ParseResult is a tagged union of a successful parse and a parse failure.
// Downstream code cannot accidentally treat unvalidated generation output as
// trusted: it either gets a schema-checkable Value or the Raw text plus Reason.
type ParseResult struct {
	Value  json.RawMessage
	Raw    string
	Reason string
}

// OK reports whether the parse succeeded.
func (r ParseResult) OK() bool {
	return r.Reason == ""
}

// ParseJSONResponse strips code fences from a generation response and checks
// that the remainder is valid JSON. It never returns an error: a malformed
// response yields a ParseResult carrying the raw text and the failure reason.
func ParseJSONResponse(text string) ParseResult {
	cleaned := CleanJSONBlock(text)
	if !json.Valid([]byte(cleaned)) {
		return ParseResult{Raw: text, Reason: "response is not valid JSON after fence stripping"}
	}
	return ParseResult{Value: json.RawMessage(cleaned), Raw: text}
}
