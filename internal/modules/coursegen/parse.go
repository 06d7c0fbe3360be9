package coursegen

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonFenceOpen  = regexp.MustCompile("^```json\\s*")
	plainFenceOpen = regexp.MustCompile("^```\\s*")
	fenceClose     = regexp.MustCompile("\\s*```$")
)

// StripFences trims the text and removes one surrounding markdown code fence,
// tagged json or untagged. Anything else is returned trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = jsonFenceOpen.ReplaceAllString(s, "")
		s = fenceClose.ReplaceAllString(s, "")
	case strings.HasPrefix(s, "```"):
		s = plainFenceOpen.ReplaceAllString(s, "")
		s = fenceClose.ReplaceAllString(s, "")
	}
	return s
}

// ParseJSON decodes model output into a generic JSON value after fence
// stripping. Objects become map[string]any, arrays []any and numbers float64.
func ParseJSON(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(StripFences(raw)), &v); err != nil {
		return nil, &MalformedOutputError{Raw: raw, Err: err}
	}
	return v, nil
}
