// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/store"
)

const (
	adminCookie      = "admin_token"
	backgroundWrite  = 5 * time.Second
	visitorPageLimit = 200
)

// paths that are never recorded as visits
var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin", "/favicon", "/privacy", "/api/",
}

func (s *server) initAdmin() {
	s.adminToken = generateAdminToken()

	s.log.Info("admin access available", "path", "/admin/login")
	if gin.Mode() == gin.DebugMode {
		s.log.Debug("admin token (dev only)", "token", s.adminToken)
	}
	if s.cfg.UsingDefaultAdmin() {
		s.log.Warn("using default admin credentials, set ADMIN_USERNAME and ADMIN_PASSWORD")
	}
	s.log.Info("visitor tracking enabled with hashed IP addresses")
}

func generateAdminToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate admin token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || s.adminToken == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *server) validCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword))
	return u&p == 1
}

// skipPrefixes adds the raw collection directories to untrackedPrefixes.
func (s *server) skipPrefixes() []string {
	prefixes := append([]string(nil), untrackedPrefixes...)
	for _, c := range []content.Collection{s.blog(), s.projects()} {
		prefixes = append(prefixes, "/"+c.Dir+"/")
	}
	return prefixes
}

func (s *server) tracked(path string) bool {
	for _, prefix := range s.untracked {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// visitorTrackingMiddleware records page views in the background. Requests
// with a Do Not Track header are skipped.
func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.store == nil || !s.tracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		s.background(func(ctx context.Context) {
			if err := s.store.TrackVisit(ctx, ip, ua, path); err != nil {
				s.log.StoreError("track visit", err)
			}
		})
		c.Next()
	}
}

func (s *server) recordView(collection, id string) {
	s.background(func(ctx context.Context) {
		if err := s.store.RecordView(ctx, collection, id); err != nil {
			s.log.StoreError("record view", err)
		}
	})
}

// background runs fn detached from the request with its own deadline.
func (s *server) background(fn func(ctx context.Context)) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), backgroundWrite)
		defer cancel()
		fn(ctx)
	}()
}

// cleanupOldVisitorData deletes visitor rows past the retention period.
func (s *server) cleanupOldVisitorData(ctx context.Context) {
	n, err := s.store.CleanupOlderThan(ctx, s.now().Add(-store.Retention))
	if err != nil {
		s.log.StoreError("cleanup", err)
		return
	}
	if n > 0 {
		s.log.Info("privacy cleanup", "removed", n, "older_than", store.Retention)
	}
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"site":   s.copy,
			"title":  "Privacy Policy",
			"notice": PrivacyNotice,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		client := s.clientHash(c)
		if !s.validCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.log.Warn("failed admin login", "client", client)
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		s.log.Info("admin login", "client", client)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.log.Info("admin logout", "client", s.clientHash(c))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.log.StoreError("stats", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.log.StoreError("stats", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisitors(c.Request.Context(), visitorPageLimit)
		if err != nil {
			s.log.StoreError("visitors", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	admin.DELETE("/views/:collection/:slug", func(c *gin.Context) {
		collection, slug := c.Param("collection"), c.Param("slug")
		if collection != content.Blog && collection != content.Projects {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
			return
		}

		existed, err := s.store.ResetViews(c.Request.Context(), collection, slug)
		if err != nil {
			s.log.StoreError("reset views", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset views"})
			return
		}
		if !existed {
			c.JSON(http.StatusNotFound, gin.H{"error": "no views recorded"})
			return
		}

		s.log.Info("views reset", "collection", collection, "id", slug, "client", s.clientHash(c))
		c.JSON(http.StatusOK, gin.H{"message": "views reset"})
	})

	admin.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		s.cleanupOldVisitorData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "privacy cleanup complete"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.log.StoreError("export", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.Info("stats exported", "client", s.clientHash(c))
		c.JSON(http.StatusOK, stats)
	})
}

// clientHash identifies a client in logs without recording its address.
func (s *server) clientHash(c *gin.Context) string {
	if s.store == nil {
		return ""
	}
	return s.store.HashIP(c.ClientIP())
}
