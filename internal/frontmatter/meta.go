package frontmatter

import (
	"fmt"
	"strings"
)

// Meta holds decoded front-matter values. Values are string, []string or
// []any (a list literal with non-string elements).
type Meta map[string]any

// String returns the value for key as a string. Missing keys yield "".
func (m Meta) String(key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Strings returns the value for key as a list. A scalar is split on commas,
// so "tags: go, web" and `tags: ["go", "web"]` read the same. The unquoted
// "tags: [go, web]" is not a valid list literal and decodes to no tags.
func (m Meta) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

// First returns the first non-empty string among keys.
func (m Meta) First(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(m.String(k)); v != "" {
			return v
		}
	}
	return ""
}
