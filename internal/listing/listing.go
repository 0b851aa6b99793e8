// Package listing filters and paginates content collections.
package listing

import (
	"sort"
	"strings"

	"github.com/Zachkp/portfolio/internal/content"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 3

// Filter is the active search state of a listing page. Empty fields do not
// constrain the result.
type Filter struct {
	Query    string
	Category string
	Tag      string
}

// Active reports whether any constraint is set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || f.Category != "" || f.Tag != ""
}

// Page is one page of a filtered listing.
type Page struct {
	Items      []content.Item
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number >= 1 && p.Number < p.TotalPages }

// Pages returns the page numbers 1..TotalPages.
func (p Page) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Apply filters items and returns the requested 1-based page. A page outside
// 1..TotalPages yields an empty page, not an error.
func Apply(items []content.Item, f Filter, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	filtered := Match(items, f)

	p := Page{
		Items:      []content.Item{},
		Number:     page,
		Size:       pageSize,
		Total:      len(filtered),
		TotalPages: (len(filtered) + pageSize - 1) / pageSize,
	}
	if page < 1 || page > p.TotalPages {
		return p
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(filtered))
	p.Items = filtered[start:end]
	return p
}

// Match returns the items passing every constraint of f, in input order.
func Match(items []content.Item, f Filter) []content.Item {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]content.Item, 0, len(items))
	for _, it := range items {
		if query != "" && !matchesQuery(it, query) {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Tag != "" && !hasTag(it, f.Tag) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesQuery(it content.Item, query string) bool {
	if strings.Contains(strings.ToLower(it.Title), query) ||
		strings.Contains(strings.ToLower(it.Excerpt), query) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func hasTag(it content.Item, tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Categories returns the distinct non-empty categories, sorted.
func Categories(items []content.Item) []string {
	seen := map[string]bool{}
	for _, it := range items {
		if it.Category != "" {
			seen[it.Category] = true
		}
	}
	return sortedKeys(seen)
}

// Tags returns the distinct tags across items, sorted.
func Tags(items []content.Item) []string {
	seen := map[string]bool{}
	for _, it := range items {
		for _, t := range it.Tags {
			if t != "" {
				seen[t] = true
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
