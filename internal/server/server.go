// Package server exposes the admin and content HTTP API.
package server

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gamepress/internal/newsletter"
	"gamepress/internal/relevance"
	"gamepress/internal/store"
)

// Server wraps the echo instance and its route handlers.
type Server struct {
	echo *echo.Echo
	addr string
}

// Options configures the HTTP server.
type Options struct {
	Addr string
	// AdminKey protects the admin routes when non-empty.
	AdminKey string
}

func New(opts Options, st store.Store, news *newsletter.Service, searcher *relevance.Searcher, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h := &Handler{store: st, news: news, searcher: searcher, log: log, adminKey: opts.AdminKey}
	h.Register(e)

	return &Server{echo: e, addr: opts.Addr}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Register mounts all API routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")

	api.GET("/articles", h.ListArticles)
	api.GET("/articles/:slug", h.ArticleBySlug)

	api.GET("/breaking", h.ActiveBreaking)
	api.GET("/breaking/history", h.BreakingHistory)

	api.POST("/newsletter/subscribe", h.Subscribe)

	api.GET("/search", h.Search)
	api.GET("/search/suggestions", h.Suggestions)

	// Everything below mutates content or exposes subscriber data.
	admin := api.Group("", h.requireAdminKey)

	admin.POST("/articles", h.CreateArticle)
	admin.PUT("/articles", h.UpdateArticle)
	admin.DELETE("/articles", h.DeleteArticle)

	admin.GET("/subscribers", h.ListSubscribers)
	admin.GET("/subscribers/stats", h.SubscriberStats)
	admin.GET("/subscribers/export", h.ExportSubscribers)
	admin.PUT("/subscribers/bulk", h.BulkUpdateSubscribers)
	admin.DELETE("/subscribers/bulk", h.BulkDeleteSubscribers)

	admin.GET("/groups", h.ListGroups)
	admin.POST("/groups", h.CreateGroup)
	admin.PUT("/groups/:id", h.UpdateGroup)
	admin.DELETE("/groups/:id", h.DeleteGroup)
}
