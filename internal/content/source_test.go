package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func newContentServer(t *testing.T, indexStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/blog-files", func(w http.ResponseWriter, r *http.Request) {
		if indexStatus != http.StatusOK {
			http.Error(w, "unavailable", indexStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["first-post.md","gone.md"]`))
	})
	mux.HandleFunc("/BlogArticles/first-post.md", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("---\ntitle: First Post\ndate: 2024-01-02\n---\nHello"))
	})
	mux.HandleFunc("/BlogArticles/beyond-basic-eda.md", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("---\ntitle: EDA\n---\nBody"))
	})
	mux.HandleFunc("/BlogArticles/broken.md", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSource_List(t *testing.T) {
	srv := newContentServer(t, http.StatusOK)
	src, err := NewHTTPSource(srv.URL+"/", nil, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	got := NewLoader(src, nil).List(context.Background(), BlogCollection(time.Now()))
	if got.Tier != TierIndex {
		t.Fatalf("expected index tier, got %s", got.Tier)
	}
	if len(got.Items) != 1 || got.Items[0].Title != "First Post" {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
}

func TestHTTPSource_IndexFailureFallsBack(t *testing.T) {
	srv := newContentServer(t, http.StatusServiceUnavailable)
	src, err := NewHTTPSource(srv.URL, nil, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	got := NewLoader(src, nil).List(context.Background(), BlogCollection(time.Now()))
	if got.Tier != TierFallbackFiles {
		t.Fatalf("expected fallback-files tier, got %s", got.Tier)
	}
	if !reflect.DeepEqual(ids(got.Items), []string{"beyond-basic-eda"}) {
		t.Fatalf("unexpected items: %v", ids(got.Items))
	}
}

func TestHTTPSource_UnreachableServesStatic(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	src, err := NewHTTPSource(srv.URL, nil, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	c := BlogCollection(time.Now())
	got := NewLoader(src, nil).List(context.Background(), c)
	if got.Tier != TierStatic || len(got.Items) != len(c.Static) {
		t.Fatalf("expected static listing, got %s with %d items", got.Tier, len(got.Items))
	}
}

func TestHTTPSource_ReadErrors(t *testing.T) {
	srv := newContentServer(t, http.StatusOK)
	src, err := NewHTTPSource(srv.URL, nil, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	c := BlogCollection(time.Now())

	if _, err := src.Read(context.Background(), c, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = src.Read(context.Background(), c, "broken")
	if err == nil || errors.Is(err, ErrNotFound) || !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := src.Index(context.Background(), ProjectCollection()); !errors.Is(err, ErrNoIndex) {
		t.Fatalf("expected ErrNoIndex, got %v", err)
	}
}

func TestHTTPSource_InvalidIndexJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, nil, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	if _, err := src.Index(context.Background(), BlogCollection(time.Now())); err == nil {
		t.Fatal("expected error for non-array index")
	}
}

func TestHTTPSource_OversizedFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/BlogArticles/huge.md":
			_, _ = w.Write([]byte(strings.Repeat("a", maxFileSize+1)))
		case "/BlogArticles/exact.md":
			_, _ = w.Write([]byte(strings.Repeat("a", maxFileSize)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL, nil, 5*time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	c := BlogCollection(time.Now())

	if _, err := src.Read(context.Background(), c, "huge"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	text, err := src.Read(context.Background(), c, "exact")
	if err != nil {
		t.Fatalf("Read at the limit: %v", err)
	}
	if len(text) != maxFileSize {
		t.Fatalf("read %d bytes, want %d", len(text), maxFileSize)
	}
}

func TestNewHTTPSource_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"ftp://example.com", "://missing-scheme", "example.com"} {
		if _, err := NewHTTPSource(u, nil, time.Second); err == nil {
			t.Errorf("expected error for %q", u)
		}
	}
}

func TestDirSource(t *testing.T) {
	fsys := fstest.MapFS{
		"Projects/b-project.md":     {Data: []byte("---\ntitle: B\n---\n")},
		"Projects/a-project.md":     {Data: []byte("---\ntitle: A\n---\n")},
		"Projects/notes.txt":        {Data: []byte("ignored")},
		"Projects/drafts/hidden.md": {Data: []byte("ignored")},
	}
	src := NewDirSource(fsys)
	c := ProjectCollection()

	names, err := src.Index(context.Background(), c)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if want := []string{"a-project.md", "b-project.md"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	text, err := src.Read(context.Background(), c, "a-project")
	if err != nil || !strings.Contains(text, "title: A") {
		t.Fatalf("Read: %q %v", text, err)
	}
	if _, err := src.Read(context.Background(), c, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Read(ctx, c, "a-project"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCollectionPaths(t *testing.T) {
	c := Collection{Name: "blog", Dir: "BlogArticles"}
	if c.FilePath("x") != "BlogArticles/x.md" {
		t.Errorf("unexpected file path %q", c.FilePath("x"))
	}
	if c.LinkFor("x") != "/blog/x" {
		t.Errorf("unexpected link %q", c.LinkFor("x"))
	}
	if IDFromFilename("dir/post.md") != "post" || IDFromFilename("post") != "post" {
		t.Errorf("unexpected ids")
	}
}

func TestDirSource_ExtensionCase(t *testing.T) {
	fsys := fstest.MapFS{
		"Projects/Foo.MD": {Data: []byte("---\ntitle: Foo\n---\n")},
		"Projects/bar.md": {Data: []byte("---\ntitle: Bar\n---\n")},
		"Projects/baz.Md": {Data: []byte("---\ntitle: Baz\n---\n")},
	}
	src := NewDirSource(fsys)
	c := ProjectCollection()

	names, err := src.Index(context.Background(), c)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if want := []string{"bar.md"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	got := NewLoader(src, nil).List(context.Background(), c)
	if got.Tier != TierIndex {
		t.Fatalf("expected index tier, got %s", got.Tier)
	}
	if !reflect.DeepEqual(ids(got.Items), []string{"bar"}) {
		t.Fatalf("unexpected items: %v", ids(got.Items))
	}
}
