package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/content"
)

// CollectionSettings overrides where a collection's content comes from.
// A nil Index keeps the built-in index path; an empty string disables it.
type CollectionSettings struct {
	Dir           string   `yaml:"dir,omitempty"`
	Index         *string  `yaml:"index,omitempty"`
	FallbackFiles []string `yaml:"fallback_files,omitempty"`
}

// Site is the optional site.yaml file.
type Site struct {
	Title    string             `yaml:"title"`
	Tagline  string             `yaml:"tagline,omitempty"`
	About    string             `yaml:"about,omitempty"`
	Blog     CollectionSettings `yaml:"blog,omitempty"`
	Projects CollectionSettings `yaml:"projects,omitempty"`
}

// LoadSite reads path. A missing file yields an empty Site.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Site{}, nil
		}
		return nil, fmt.Errorf("cannot read site file %s: %w", path, err)
	}
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// reserved top-level paths that a content directory would shadow
var reservedDirs = map[string]bool{
	"blog": true, "projects": true, "api": true, "admin": true,
	"static": true, "images": true, "contact": true, "privacy": true,
}

// Validate rejects fallback filenames that cannot name a content file and
// directories that would collide with page routes.
func (s *Site) Validate() error {
	for name, cs := range map[string]CollectionSettings{"blog": s.Blog, "projects": s.Projects} {
		dir := strings.Trim(cs.Dir, "/")
		if cs.Dir != "" && (dir == "" || strings.Contains(dir, "..") || reservedDirs[strings.ToLower(dir)]) {
			return fmt.Errorf("%w: %s dir %q", ErrInvalid, name, cs.Dir)
		}
		for _, f := range cs.FallbackFiles {
			if !content.ValidID(content.IDFromFilename(f)) || strings.Contains(f, "..") {
				return fmt.Errorf("%w: %s fallback file %q", ErrInvalid, name, f)
			}
		}
	}
	return nil
}

// Apply returns c with the settings applied.
func (cs CollectionSettings) Apply(c content.Collection) content.Collection {
	if cs.Dir != "" {
		c.Dir = strings.Trim(cs.Dir, "/")
	}
	if cs.Index != nil {
		c.IndexPath = *cs.Index
	}
	if len(cs.FallbackFiles) > 0 {
		c.FallbackFiles = append([]string(nil), cs.FallbackFiles...)
	}
	return c
}
