package translate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseable means no translations array could be recovered from a reply.
var ErrUnparseable = errors.New("no translations array in reply")

// ParseTranslations extracts the translated lines from a chat-model reply.
// Models wrap the JSON in markdown fences or prose often enough that three
// passes are tried in order: the raw reply, the reply with a code fence
// stripped, and the first balanced {...} substring. Array entries that are
// not strings become "" so one bad entry cannot sink the whole batch.
func ParseTranslations(content string) ([]string, error) {
	// ASS-style \N line breaks are invalid JSON escapes
	content = strings.ReplaceAll(content, `\N`, `\n`)

	if out, ok := tryParse(content); ok {
		return out, nil
	}
	if stripped, ok := stripFence(content); ok {
		if out, ok := tryParse(stripped); ok {
			return out, nil
		}
	}
	if obj, ok := firstJSONObject(content); ok {
		if out, ok := tryParse(obj); ok {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnparseable, truncate(content, 200))
}

func tryParse(s string) ([]string, bool) {
	var wrapped struct {
		Translations []interface{} `json:"translations"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &wrapped); err != nil {
		return nil, false
	}
	if wrapped.Translations == nil {
		return nil, false
	}
	out := make([]string, len(wrapped.Translations))
	for i, v := range wrapped.Translations {
		if str, ok := v.(string); ok {
			out[i] = str
		}
	}
	return out, true
}

// stripFence removes a surrounding markdown code fence
func stripFence(s string) (string, bool) {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return "", false
	}
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimPrefix(t, "json")
	t = strings.TrimPrefix(t, "JSON")
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t), true
}

// firstJSONObject returns the first brace-balanced substring. Braces inside
// string values can fool the depth counter, but a reply that pathological
// fails the parse afterwards anyway.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
