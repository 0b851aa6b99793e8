package content

import (
	"path"
	"strings"
)

// Collection describes where one kind of content lives and what to show when
// none of it can be fetched.
type Collection struct {
	// Name identifies the collection in logs and URLs ("blog", "projects").
	Name string
	// Dir is the directory holding <id>.md files, relative to the source root.
	Dir string
	// IndexPath is the path of a JSON array of filenames. Empty disables the
	// index tier.
	IndexPath string
	// FallbackFiles is tried when the index is unavailable.
	FallbackFiles []string
	// Static is served when nothing could be fetched.
	Static []Item
	// SortByDate orders listings newest first.
	SortByDate bool
	// LinkPrefix is the public URL prefix of detail pages.
	LinkPrefix string
}

// LinkFor returns the detail page URL for id.
func (c Collection) LinkFor(id string) string {
	prefix := c.LinkPrefix
	if prefix == "" {
		prefix = "/" + c.Name
	}
	return path.Join("/", prefix, id)
}

// FilePath returns the slash-separated path of the Markdown file for id.
func (c Collection) FilePath(id string) string {
	return path.Join(c.Dir, id+".md")
}

// IDFromFilename strips directories and the .md extension.
func IDFromFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(name, ".md")
}

// ValidID reports whether id is safe to use as a single path element.
func ValidID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, "/\\\x00")
}
