package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseAIJSON extracts and parses a JSON payload from model output that may be:
// - pure JSON
// - JSON wrapped in a markdown code block (```json ... ```)
// - JSON surrounded by prose
// - JSON with trailing commas
func ParseAIJSON(input string, target interface{}) error {
	if input == "" {
		return fmt.Errorf("empty input")
	}

	// Try direct parsing first (most common case)
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	// Try to extract JSON from a markdown code block
	if extracted := extractFromMarkdown(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	// Try to find the first balanced JSON object in surrounding text
	if extracted := ExtractJSONObject(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		// Last resort: drop trailing commas inside the extracted span
		cleaned := trailingCommaRe.ReplaceAllString(extracted, "$1")
		if err := json.Unmarshal([]byte(cleaned), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no JSON payload in input: %s", truncateString(input, 100))
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// extractFromMarkdown extracts the body of a ```json or bare ``` code block.
func extractFromMarkdown(input string) string {
	re1 := regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	if matches := re1.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	re2 := regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	if matches := re2.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content
		}
	}

	return ""
}

// ExtractJSONObject returns the first balanced {...} span in the input, or ""
// when none exists. It tolerates surrounding prose; braces inside string
// literals do not count toward balance.
func ExtractJSONObject(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}
	return extractBalanced(input[start:], '{', '}')
}

// extractBalanced scans for a balanced open/close span, honoring string
// literals and escapes.
func extractBalanced(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
