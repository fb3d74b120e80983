package extract

import (
	"regexp"
	"strings"
)

// Generation context is bounded, so extracted text is capped before it
// reaches the structuring prompt.
const maxTextLength = 15000

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
	pageNumber  = regexp.MustCompile(`(?i)^\s*(page\s*\d+|\d+\s*/\s*\d+)\s*$`)
)

// Clean normalizes extracted document text before structuring: page
// artifacts and excess whitespace go, and very long documents are
// truncated at a paragraph boundary.
func Clean(raw string) string {
	if raw == "" {
		return raw
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\x0c", "\n")
	text = strings.ReplaceAll(text, "�", "")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
		if pageNumber.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}
	text = strings.Join(kept, "\n")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	return truncate(text)
}

func truncate(text string) string {
	if len(text) <= maxTextLength {
		return text
	}
	cut := text[:maxTextLength]
	// prefer a paragraph boundary when one is reasonably close
	if idx := strings.LastIndex(cut, "\n\n"); idx > maxTextLength/2 {
		cut = cut[:idx]
	}
	return cut
}
