package utils

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

var (
	bareKeyPattern       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ParseLooseJSON recovers a JSON value from model output that may be wrapped
// in markdown fences, use unquoted keys, carry trailing commas, or trail off
// into prose. Strict parsing is tried first, then the textual repairs, then a
// bracket-balanced extraction of the first array region. The second return is
// false when every attempt fails; no partial value is ever returned.
func ParseLooseJSON(raw string) (interface{}, bool) {
	cleaned := StripCodeFences(raw)

	var v interface{}
	if err := json.Unmarshal([]byte(cleaned), &v); err == nil {
		return v, true
	}

	repaired := bareKeyPattern.ReplaceAllString(cleaned, `$1"$2":`)
	repaired = trailingCommaPattern.ReplaceAllString(repaired, `$1`)
	if err := json.Unmarshal([]byte(repaired), &v); err == nil {
		return v, true
	}

	region := widestArrayRegion(repaired)
	if region != "" {
		if err := json.Unmarshal([]byte(region), &v); err == nil {
			return v, true
		}
	}

	log.Printf("Loose JSON parse failed after repairs: %.80q", raw)
	return nil, false
}

// StripCodeFences removes markdown code fences around model output.
func StripCodeFences(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	return strings.TrimSpace(response)
}

// widestArrayRegion isolates the first top-level array in s. A balanced scan
// from the first '[' is preferred; when the scan finds no close the span to
// the last ']' is used instead.
func widestArrayRegion(s string) string {
	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}
	if end := FindMatchingBracket(s, start); end != -1 {
		return s[start : end+1]
	}
	if end := strings.LastIndex(s, "]"); end > start {
		return s[start : end+1]
	}
	return ""
}

// FindMatchingBrace finds the matching closing brace for an opening brace,
// skipping string literals and escaped characters.
func FindMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// FindMatchingBracket finds the matching closing bracket for an opening
// bracket, skipping string literals and escaped characters.
func FindMatchingBracket(s string, start int) int {
	if start >= len(s) || s[start] != '[' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
