package content

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zachkp/portfolio/internal/frontmatter"
)

const wordsPerMinute = 200

// Item is a blog post or project entry. Items are built once per fetch and
// not modified afterwards.
type Item struct {
	ID         string     `json:"id"`
	Collection string     `json:"collection"`
	Title      string     `json:"title"`
	Excerpt    string     `json:"excerpt"`
	Body       string     `json:"content,omitempty"`
	Category   string     `json:"category,omitempty"`
	Tags       []string   `json:"tags"`
	Date       *time.Time `json:"date,omitempty"`
	Image      string     `json:"image,omitempty"`
	Link       string     `json:"link"`
	ReadTime   string     `json:"readTime,omitempty"`
}

// DateLabel formats the display date, e.g. "January 2, 2006".
func (it Item) DateLabel() string {
	if it.Date == nil {
		return "Date unavailable"
	}
	return it.Date.Format("January 2, 2006")
}

// RelativeDate returns a label such as "3 days ago".
func (it Item) RelativeDate() string {
	if it.Date == nil {
		return ""
	}
	return humanize.Time(*it.Date)
}

// itemFromBlock maps decoded front matter onto an Item.
func itemFromBlock(c Collection, id string, b frontmatter.Block) (Item, *string) {
	m := b.Meta

	title := m.First("title")
	if title == "" {
		title = TitleFromSlug(id)
	}
	excerpt := m.First("excerpt", "description", "summary")
	if excerpt == "" {
		excerpt = inferExcerpt(b.Body)
	}
	readTime := m.First("readTime", "read_time")
	if readTime == "" {
		readTime = ReadTime(b.Body)
	}
	tags := m.Strings("tags")
	if tags == nil {
		tags = []string{}
	}

	it := Item{
		ID:         id,
		Collection: c.Name,
		Title:      title,
		Excerpt:    excerpt,
		Body:       b.Body,
		Category:   m.First("category"),
		Tags:       tags,
		Image:      m.First("image"),
		Link:       c.LinkFor(id),
		ReadTime:   readTime,
	}

	raw := m.First("date")
	if raw == "" {
		return it, nil
	}
	if d, err := dateparse.ParseAny(raw); err == nil {
		it.Date = &d
		return it, nil
	}
	return it, &raw
}

// TitleFromSlug turns "sales-forecasting" into "Sales Forecasting".
func TitleFromSlug(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

// ReadTime estimates reading time for a Markdown body.
func ReadTime(body string) string {
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func inferExcerpt(body string) string {
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") || strings.HasPrefix(ln, "```") {
			continue
		}
		return ln
	}
	return ""
}
