// Package frontmatter splits a leading metadata block from Markdown content
// and decodes the block's "key: value" lines.
package frontmatter

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/Zachkp/portfolio/internal/logger"
)

// Block is the result of a parse: decoded metadata plus the remaining body.
// Format names the matcher that recognized the block and is empty when the
// text had no front matter.
type Block struct {
	Meta   Meta
	Body   string
	Format string
}

// Parser tries its matchers in order and decodes the first block found.
type Parser struct {
	matchers []Matcher
	log      *logger.Logger
}

// New returns a Parser. With no matchers the DefaultMatchers are used.
func New(log *logger.Logger, matchers ...Matcher) *Parser {
	if len(matchers) == 0 {
		matchers = DefaultMatchers()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Parser{matchers: matchers, log: log}
}

// Parse never fails: text without a recognized block comes back as the body
// with an empty Meta.
func (p *Parser) Parse(text string) Block {
	s := strings.TrimPrefix(text, "\ufeff")

	for _, m := range p.matchers {
		raw, end, ok := m.Match(s)
		if !ok {
			continue
		}
		return Block{
			Meta:   p.decode(raw),
			Body:   strings.TrimSpace(s[end:]),
			Format: m.Name(),
		}
	}

	p.log.NoFrontMatter(len(text))
	return Block{Meta: Meta{}, Body: text}
}

// Parse runs a Parser with the default matchers and a discarding logger.
func Parse(text string) Block {
	return New(nil).Parse(text)
}

func (p *Parser) decode(raw string) Meta {
	meta := Meta{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		if key == "" {
			continue
		}
		meta[key] = p.decodeValue(key, strings.TrimSpace(line[i+1:]))
	}
	return meta
}

func (p *Parser) decodeValue(key, value string) any {
	if unquoted, ok := unquote(value); ok {
		return unquoted
	}
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		list, err := decodeList(value)
		if err != nil {
			p.log.ListDecodeFailed(key, value, err)
			return []string{}
		}
		return list
	}
	return value
}

func unquote(value string) (string, bool) {
	if len(value) < 2 {
		return "", false
	}
	first, last := value[0], value[len(value)-1]
	if first != last || (first != '"' && first != '\'') {
		return "", false
	}
	return value[1 : len(value)-1], true
}

// decodeList reads an inline list literal. Single quotes are treated as
// double quotes so ['a', 'b'] decodes like ["a", "b"]. A list made only of
// strings is returned as []string.
func decodeList(value string) (any, error) {
	var items []any
	if err := json.Unmarshal([]byte(strings.ReplaceAll(value, "'", `"`)), &items); err != nil {
		return nil, err
	}
	strs := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return items, nil
		}
		strs = append(strs, s)
	}
	return strs, nil
}
