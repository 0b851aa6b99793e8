package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/listing"
)

const recentPostCount = 3

func (s *server) home(c *gin.Context) {
	ctx := c.Request.Context()

	posts := s.loader.List(ctx, s.blog())
	projects := s.loader.List(ctx, s.projects())

	recent := posts.Items
	if len(recent) > recentPostCount {
		recent = recent[:recentPostCount]
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":     s.copy,
		"projects": listing.Apply(projects.Items, listing.Filter{}, 1, s.cfg.PageSize),
		"posts":    recent,
	})
}

// listPage renders a searchable, paginated collection. An out-of-range page
// renders an empty result rather than an error.
func (s *server) listPage(collection func() content.Collection, tmpl string) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := collection()
		filter := listing.Filter{
			Query:    strings.TrimSpace(c.Query("q")),
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil {
			page = 1
		}

		l := s.loader.List(c.Request.Context(), col)
		c.HTML(http.StatusOK, tmpl, gin.H{
			"site":       s.copy,
			"title":      content.TitleFromSlug(col.Name),
			"base":       col.LinkFor(""),
			"page":       listing.Apply(l.Items, filter, page, s.cfg.PageSize),
			"filter":     filter,
			"categories": listing.Categories(l.Items),
			"tags":       listing.Tags(l.Items),
			"offline":    l.Tier == content.TierStatic,
		})
	}
}

// detailPage renders one item. Missing or malformed identifiers get a 404
// with a retry link; any other fetch failure gets a 502.
func (s *server) detailPage(collection func() content.Collection, tmpl string) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := collection()
		slug := c.Param("slug")

		item, err := s.loader.Get(c.Request.Context(), col, slug)
		if err != nil {
			status := http.StatusBadGateway
			message := "This page could not be loaded right now."
			if errors.Is(err, content.ErrNotFound) || errors.Is(err, content.ErrInvalidID) {
				status = http.StatusNotFound
				message = "We couldn't find what you were looking for."
			} else {
				s.log.FetchFailed(col.Name, slug, err)
			}
			c.HTML(status, "notfound.html", gin.H{
				"site":    s.copy,
				"title":   "Not found",
				"message": message,
				"retry":   c.Request.URL.Path,
				"back":    col.LinkFor(""),
			})
			return
		}

		body, err := s.md.HTML(item.Body)
		if err != nil {
			s.log.Error("render failed", "collection", col.Name, "id", slug, "error", err)
			c.HTML(http.StatusInternalServerError, "notfound.html", gin.H{
				"site":    s.copy,
				"title":   "Something went wrong",
				"message": "This page could not be displayed.",
				"retry":   c.Request.URL.Path,
				"back":    col.LinkFor(""),
			})
			return
		}

		if s.store != nil {
			s.recordView(col.Name, item.ID)
		}

		c.HTML(http.StatusOK, tmpl, gin.H{
			"site": s.copy,
			"item": item,
			"body": body,
			"back": col.LinkFor(""),
		})
	}
}

// indexFiles serves the JSON array of Markdown filenames that the index tier
// of a remote deployment reads.
func (s *server) indexFiles(collection func() content.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.local == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no local content"})
			return
		}
		col := collection()
		names, err := content.NewDirSource(s.local).Index(c.Request.Context(), col)
		if err != nil {
			s.log.Warn("index listing failed", "collection", col.Name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "index unavailable"})
			return
		}
		if names == nil {
			names = []string{}
		}
		c.JSON(http.StatusOK, names)
	}
}

// requestLogger tags every request with an id and logs it once it completes.
func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		c.Next()

		s.log.Request(id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
