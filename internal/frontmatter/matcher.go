package frontmatter

import "regexp"

// Matcher recognizes one delimiter convention at the start of a document.
// Match returns the raw metadata block and the length of the matched prefix.
type Matcher interface {
	Name() string
	Match(text string) (block string, end int, ok bool)
}

// patternMatcher is a Matcher backed by an anchored regular expression whose
// first capture group (optional) holds the block.
type patternMatcher struct {
	name    string
	pattern *regexp.Regexp
}

func (m patternMatcher) Name() string { return m.name }

func (m patternMatcher) Match(text string) (string, int, bool) {
	loc := m.pattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", 0, false
	}
	block := ""
	if len(loc) >= 4 && loc[2] >= 0 {
		block = text[loc[2]:loc[3]]
	}
	return block, loc[1], true
}

// NewMatcher builds a Matcher from a pattern. The pattern must be anchored
// with ^ and may capture the block in its first group.
func NewMatcher(name, pattern string) Matcher {
	return patternMatcher{name: name, pattern: regexp.MustCompile(pattern)}
}

var (
	// YAML is the primary convention: --- fences, closing fence ends its line.
	YAML = NewMatcher("yaml", `^---[ \t]*\r?\n(?:([\s\S]*?)\r?\n)?---[ \t]*\r?\n`)

	// YAMLLoose takes the first line starting with --- as the closing fence,
	// whatever follows it on that line. It also covers a fence at end of input.
	YAMLLoose = NewMatcher("yaml-loose", `^---[ \t]*\r?\n(?:([\s\S]*?)\r?\n)?---`)

	// TOML uses +++ fences.
	TOML = NewMatcher("toml", `^\+\+\+[ \t]*\r?\n(?:([\s\S]*?)\r?\n)?\+\+\+[ \t]*\r?\n`)

	// JSON wraps the block in double braces.
	JSON = NewMatcher("json", `^\{\{([\s\S]*?)\}\}[ \t]*\r?\n`)
)

// DefaultMatchers is the order in which delimiter conventions are tried.
func DefaultMatchers() []Matcher {
	return []Matcher{YAML, YAMLLoose, TOML, JSON}
}
