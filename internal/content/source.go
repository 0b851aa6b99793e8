package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Source reads a collection's index and its Markdown files.
type Source interface {
	Index(ctx context.Context, c Collection) ([]string, error)
	Read(ctx context.Context, c Collection, id string) (string, error)
}

// maxFileSize caps a single content download.
const maxFileSize = 4 << 20

// HTTPSource fetches content files served under a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource returns a source rooted at baseURL. A nil client gets a
// client with the given timeout.
func NewHTTPSource(baseURL string, client *http.Client, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid content base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("content base URL %q must be http or https", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{base: u, client: client}, nil
}

// Index fetches the collection's JSON filename list.
func (s *HTTPSource) Index(ctx context.Context, c Collection) ([]string, error) {
	if c.IndexPath == "" {
		return nil, ErrNoIndex
	}
	body, err := s.get(ctx, c.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("fetch %s index: %w", c.Name, err)
	}
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("invalid %s index JSON: %w", c.Name, err)
	}
	return names, nil
}

// Read fetches <dir>/<id>.md.
func (s *HTTPSource) Read(ctx context.Context, c Collection, id string) (string, error) {
	body, err := s.get(ctx, c.FilePath(id))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (s *HTTPSource) get(ctx context.Context, p string) ([]byte, error) {
	u := *s.base
	u.Path = path.Join("/", s.base.Path, p)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", u.Path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: unexpected status %s", u.Path, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u.Path, err)
	}
	if len(body) > maxFileSize {
		return nil, fmt.Errorf("%s: over %d bytes: %w", u.Path, maxFileSize, ErrTooLarge)
	}
	return body, nil
}

// DirSource reads content from a file tree such as os.DirFS("content").
type DirSource struct {
	fsys fs.FS
}

// NewDirSource returns a source backed by fsys.
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Index lists the Markdown files in the collection directory, sorted by name.
// Only the lowercase .md extension counts, matching IDFromFilename.
func (s *DirSource) Index(ctx context.Context, c Collection) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the file for id.
func (s *DirSource) Read(ctx context.Context, c Collection, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p := c.FilePath(id)
	b, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", p, ErrNotFound)
		}
		return "", fmt.Errorf("cannot read %s: %w", p, err)
	}
	return string(b), nil
}
