// Package textutil provides the shared text normalization primitives used by
// the scoring, merge, rewrite, and audit guardrails. Every check that compares
// generated content against ground truth goes through these helpers so that
// "same token" means the same thing everywhere.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	numberRe     = regexp.MustCompile(`\d+(?:\.\d+)?`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Tokenize lowercases text and splits it into alphanumeric tokens, stripping
// all other characters. "CI/CD-ready!" yields ["ci", "cd", "ready"].
func Tokenize(text string) []string {
	cleaned := nonAlnumRe.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(cleaned)
	return fields
}

// TokenSet returns the set of tokens in text.
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		set[tok] = true
	}
	return set
}

// Numbers extracts every numeric token (digit runs with optional decimal part)
// from text, in order of appearance.
func Numbers(text string) []string {
	return numberRe.FindAllString(text, -1)
}

// ContainsDigit reports whether text contains at least one digit.
func ContainsDigit(text string) bool {
	for _, r := range text {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsNumeric reports whether a token contains no ASCII letter. Such tokens are
// structural rather than semantic and are exempt from source-traceability checks.
func IsNumeric(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return token != ""
}

// NormalizeWhitespace collapses all runs of whitespace to single spaces and trims.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// NormalizeLine lowercases and whitespace-normalizes a line for duplicate detection.
func NormalizeLine(text string) string {
	return strings.ToLower(NormalizeWhitespace(text))
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ContainsFold reports whether s contains substr, case-insensitively.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// WholeWordCount counts case-insensitive whole-word occurrences of word in text.
func WholeWordCount(text, word string) int {
	if strings.TrimSpace(word) == "" {
		return 0
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllString(text, -1))
}

// FirstWord returns the first whitespace-separated word of text with trailing
// punctuation removed, or "" for empty text.
func FirstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
