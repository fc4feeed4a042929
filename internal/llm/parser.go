package llm

import (
	"errors"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/goccy/go-json"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrNotAList is returned when a reply cannot be read as a list of strings.
var ErrNotAList = errors.New("response is not a list of strings")

// ParseStringList reads a model reply that must be exactly one array of
// strings, optionally inside a code fence. Strict JSON is tried first. Small
// syntax slips inside the array (single quotes, trailing commas, missing
// commas between lines) are then repaired with json-repair or Hjson, but a
// repaired entry is kept only if it appears quoted in the reply as written.
// Truncated arrays, prose around or inside the brackets, and objects are
// rejected. Blank entries are dropped; an empty result is an error.
func ParseStringList(content string) ([]string, error) {
	content = cleanMarkdownWrapper(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty response", ErrNotAList)
	}
	if !strings.HasPrefix(content, "[") || !strings.HasSuffix(content, "]") {
		return nil, fmt.Errorf("%w: reply is not a complete array", ErrNotAList)
	}

	var raw []any
	if err := json.Unmarshal([]byte(content), &raw); err == nil {
		return stringsOf(raw, "")
	}

	if repaired, err := jsonrepair.RepairJSON(content); err == nil {
		if err := json.Unmarshal([]byte(repaired), &raw); err == nil {
			if items, err := stringsOf(raw, content); err == nil {
				return items, nil
			}
		}
	}

	raw = nil
	if err := hjson.Unmarshal([]byte(content), &raw); err == nil {
		return stringsOf(raw, content)
	}

	return nil, ErrNotAList
}

// stringsOf accepts only lists whose every element is a string without
// brackets. When original is set, each entry must also appear quoted in it,
// so repairs cannot invent text from unquoted prose.
func stringsOf(raw []any, original string) ([]string, error) {
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string entry", ErrNotAList)
		}
		if strings.ContainsAny(s, "[]") {
			return nil, fmt.Errorf("%w: entry contains brackets", ErrNotAList)
		}
		if original != "" && !quotedIn(original, s) {
			return nil, fmt.Errorf("%w: unquoted entry", ErrNotAList)
		}
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, s)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrNotAList)
	}
	return items, nil
}

func quotedIn(original, s string) bool {
	return strings.Contains(original, `"`+s+`"`) || strings.Contains(original, `'`+s+`'`)
}

// cleanMarkdownWrapper strips a surrounding code fence and whitespace.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if nl := strings.Index(content, "\n"); nl >= 0 {
			content = content[nl+1:]
		} else {
			content = strings.TrimPrefix(content, "```")
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	return content
}
