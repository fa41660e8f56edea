package ai

import (
	"regexp"
	"strings"
)

var thinkTagRegex = regexp.MustCompile(`(?s)<think>.*?</think>`)

// CleanResponse strips reasoning tags and markdown code fences that some
// models wrap plain-text answers in.
func CleanResponse(text string) string {
	cleaned := strings.TrimSpace(thinkTagRegex.ReplaceAllString(text, ""))

	cleaned = strings.TrimPrefix(cleaned, "```markdown")
	cleaned = strings.TrimPrefix(cleaned, "```text")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	return strings.TrimSpace(cleaned)
}
