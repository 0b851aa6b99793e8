package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/render"
	"github.com/Zachkp/portfolio/internal/store"
)

// server holds everything the handlers need. Nothing in it changes after
// startup.
type server struct {
	cfg    *config.Config
	site   *config.Site
	copy   siteCopy
	loader *content.Loader
	local  fs.FS
	md     *render.Renderer
	store  *store.Store
	mailer mailer
	log    *logger.Logger

	adminToken string
	untracked  []string
	now        func() time.Time
	bg         sync.WaitGroup
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	lg := logger.FromEnv(cfg.LogLevel)

	site, err := config.LoadSite(cfg.SiteFile)
	if err != nil {
		lg.Fatal("failed to load site file", "error", err)
	}

	source, local, err := contentSource(cfg)
	if err != nil {
		lg.Fatal("failed to set up content source", "error", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		lg.Fatal("failed to open database", "path", cfg.DBPath, "error", err)
	}
	defer st.Close()

	srv := newServer(cfg, site, source, local, st, lg)
	srv.initAdmin()
	srv.background(srv.cleanupOldVisitorData)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("listening", "addr", httpSrv.Addr, "content", describeSource(cfg))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", "error", err)
	}
	srv.bg.Wait()
}

// contentSource picks where Markdown is read from. A base URL wins over the
// local directory, which is still served to the public when present.
func contentSource(cfg *config.Config) (content.Source, fs.FS, error) {
	var local fs.FS
	if cfg.ContentDir != "" {
		local = os.DirFS(cfg.ContentDir)
	}
	if cfg.ContentBaseURL != "" {
		src, err := content.NewHTTPSource(cfg.ContentBaseURL, nil, cfg.FetchTimeout)
		if err != nil {
			return nil, nil, err
		}
		return src, local, nil
	}
	return content.NewDirSource(local), local, nil
}

func describeSource(cfg *config.Config) string {
	if cfg.ContentBaseURL != "" {
		return cfg.ContentBaseURL
	}
	return cfg.ContentDir
}

func newServer(cfg *config.Config, site *config.Site, source content.Source, local fs.FS, st *store.Store, lg *logger.Logger) *server {
	if site == nil {
		site = &config.Site{}
	}
	srv := &server{
		cfg:    cfg,
		site:   site,
		copy:   newSiteCopy(site),
		loader: content.NewLoader(source, lg),
		local:  local,
		md:     render.New(),
		store:  st,
		mailer: smtpMailer{cfg: cfg.SMTP, log: lg},
		log:    lg,
		now:    time.Now,
	}
	srv.untracked = srv.skipPrefixes()
	return srv
}

// blog is rebuilt per request so the static fallback posts stay dated
// relative to today.
func (s *server) blog() content.Collection {
	return s.site.Blog.Apply(content.BlogCollection(s.now()))
}

func (s *server) projects() content.Collection {
	return s.site.Projects.Apply(content.ProjectCollection())
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(mustTemplates())
	r.Use(gin.Recovery(), s.requestLogger(), s.visitorTrackingMiddleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")
	if s.local != nil {
		for _, c := range []content.Collection{s.blog(), s.projects()} {
			if sub, err := fs.Sub(s.local, c.Dir); err == nil {
				r.StaticFS("/"+c.Dir, http.FS(sub))
			}
		}
	}

	r.GET("/", s.home)
	r.GET("/blog", s.listPage(s.blog, "blog.html"))
	r.GET("/blog/:slug", s.detailPage(s.blog, "post.html"))
	r.GET("/projects", s.listPage(s.projects, "projects.html"))
	r.GET("/projects/:slug", s.detailPage(s.projects, "project.html"))

	r.GET("/api/blog-files", s.indexFiles(s.blog))
	r.GET("/api/project-files", s.indexFiles(s.projects))

	// HTMX contact form endpoint, returns just the form fragment
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", s.contact)

	s.setupAdminRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{
			"site":    s.copy,
			"title":   "Page not found",
			"message": "There is nothing at this address.",
			"back":    "/",
		})
	})
	return r
}
