package main

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Zachkp/portfolio/internal/listing"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"pageURL":   pageURL,
	"filterURL": filterURL,
	"join":      strings.Join,
	"comma":     humanize.Comma,
	"add":       func(a, b int) int { return a + b },
}

func mustTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

func filterQuery(f listing.Filter) url.Values {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	return q
}

// pageURL links to another page of the same filtered listing.
func pageURL(base string, f listing.Filter, page int) string {
	q := filterQuery(f)
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

// filterURL sets one filter key and goes back to the first page. An empty
// value clears the key.
func filterURL(base string, f listing.Filter, key, value string) string {
	switch key {
	case "q":
		f.Query = value
	case "category":
		f.Category = value
	case "tag":
		f.Tag = value
	}
	return pageURL(base, f, 1)
}
