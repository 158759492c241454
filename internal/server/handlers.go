package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"gamepress/internal/core"
	"gamepress/internal/newsletter"
	"gamepress/internal/relevance"
	"gamepress/internal/store"
)

// Handler carries the dependencies of the API routes.
type Handler struct {
	store    store.Store
	news     *newsletter.Service
	searcher *relevance.Searcher
	log      *slog.Logger
	adminKey string
}

func (h *Handler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("request failed", "error", err, "status", statusCode, "path", c.Path())
	return c.JSON(statusCode, map[string]string{"error": message})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type listArticlesRequest struct {
	Category string `query:"category"`
	Featured bool   `query:"featured"`
	Limit    int    `query:"limit"`
}

func (h *Handler) ListArticles(c echo.Context) error {
	var req listArticlesRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	ctx := c.Request().Context()
	var (
		articles []core.Article
		err      error
	)
	switch {
	case req.Featured:
		limit := req.Limit
		if limit <= 0 {
			limit = 5
		}
		articles, err = h.store.ListFeaturedArticles(ctx, limit)
	case req.Category != "":
		articles, err = h.store.ListArticlesByCategory(ctx, req.Category)
	case req.Limit > 0:
		articles, err = h.store.ListLatestArticles(ctx, req.Limit)
	default:
		articles, err = h.store.ListPublishedArticles(ctx)
	}
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, articles)
}

func (h *Handler) CreateArticle(c echo.Context) error {
	var article core.Article
	if err := c.Bind(&article); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid article payload")
	}
	if article.Title == "" || article.Content == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title and content are required"})
	}
	if article.Status == "" {
		article.Status = core.StatusDraft
	}

	id, err := h.store.CreateArticle(c.Request().Context(), &article)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "failed to create article")
	}

	return c.JSON(http.StatusCreated, map[string]any{"success": true, "id": id})
}

type updateArticleRequest struct {
	ID       string  `json:"id"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Excerpt  *string `json:"excerpt"`
	Image    *string `json:"image"`
	Category *string `json:"category"`
	Author   *string `json:"author"`
	Slug     *string `json:"slug"`
	Status   *string `json:"status"`
	Featured *bool   `json:"featured"`
}

func (r *updateArticleRequest) updates() map[string]any {
	updates := make(map[string]any)
	set := func(path string, v any, ok bool) {
		if ok {
			updates[path] = v
		}
	}
	set("title", deref(r.Title), r.Title != nil)
	set("content", deref(r.Content), r.Content != nil)
	set("excerpt", deref(r.Excerpt), r.Excerpt != nil)
	set("image", deref(r.Image), r.Image != nil)
	set("category", deref(r.Category), r.Category != nil)
	set("author", deref(r.Author), r.Author != nil)
	set("slug", deref(r.Slug), r.Slug != nil)
	set("status", deref(r.Status), r.Status != nil)
	if r.Featured != nil {
		updates["featured"] = *r.Featured
	}
	return updates
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *Handler) UpdateArticle(c echo.Context) error {
	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid article payload")
	}
	if req.ID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ID del artículo es requerido"})
	}

	err := h.store.UpdateArticle(c.Request().Context(), req.ID, req.updates())
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "artículo no encontrado"})
	}
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "failed to update article")
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "id": req.ID})
}

type deleteArticleRequest struct {
	ID string `json:"id"`
}

func (h *Handler) DeleteArticle(c echo.Context) error {
	var req deleteArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid payload")
	}
	if req.ID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ID del artículo es requerido"})
	}

	err := h.store.DeleteArticle(c.Request().Context(), req.ID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "artículo no encontrado"})
	}
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "failed to delete article")
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "id": req.ID})
}

func (h *Handler) ArticleBySlug(c echo.Context) error {
	article, err := h.store.GetArticleBySlug(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "artículo no encontrado"})
	}
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, article)
}

func (h *Handler) ActiveBreaking(c echo.Context) error {
	news, err := h.store.ActiveBreakingNews(c.Request().Context())
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no hay noticias activas"})
	}
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, news)
}

func (h *Handler) BreakingHistory(c echo.Context) error {
	news, err := h.store.ListBreakingNews(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, news)
}

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid payload")
	}

	res := h.news.Subscribe(c.Request().Context(), req.Email, req.Name)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, res)
}

func (h *Handler) Search(c echo.Context) error {
	results, err := h.searcher.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	if results == nil {
		results = []relevance.Result{}
	}
	return c.JSON(http.StatusOK, results)
}

func (h *Handler) Suggestions(c echo.Context) error {
	suggestions, err := h.searcher.Suggestions(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, suggestions)
}

func (h *Handler) ListSubscribers(c echo.Context) error {
	ctx := c.Request().Context()
	if group := c.QueryParam("group"); group != "" {
		subs, err := h.store.ListSubscribersByGroup(ctx, group)
		if err != nil {
			return h.handleError(c, err, http.StatusInternalServerError, "internal error")
		}
		return c.JSON(http.StatusOK, subs)
	}

	subs, err := h.store.ListSubscribers(ctx)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, subs)
}

func (h *Handler) SubscriberStats(c echo.Context) error {
	stats, err := h.news.Stats(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ExportSubscribers(c echo.Context) error {
	subs, err := h.store.ListSubscribers(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="subscribers.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(newsletter.ExportCSV(subs)))
}

type bulkSubscribersRequest struct {
	IDs     []string       `json:"ids"`
	Updates map[string]any `json:"updates"`
}

func (h *Handler) BulkUpdateSubscribers(c echo.Context) error {
	var req bulkSubscribersRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid payload")
	}
	if len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ids are required"})
	}

	return c.JSON(http.StatusOK, h.news.BulkUpdate(c.Request().Context(), req.IDs, req.Updates))
}

func (h *Handler) BulkDeleteSubscribers(c echo.Context) error {
	var req bulkSubscribersRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid payload")
	}
	if len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ids are required"})
	}

	return c.JSON(http.StatusOK, h.news.BulkDelete(c.Request().Context(), req.IDs))
}

func (h *Handler) ListGroups(c echo.Context) error {
	groups, err := h.store.ListGroups(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, groups)
}

type groupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (h *Handler) CreateGroup(c echo.Context) error {
	var req groupRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid payload")
	}

	res := h.news.CreateGroup(c.Request().Context(), deref(req.Name), deref(req.Description), deref(req.Color))
	status := http.StatusCreated
	if !res.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, res)
}

func (h *Handler) UpdateGroup(c echo.Context) error {
	var req groupRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid payload")
	}

	res := h.news.UpdateGroup(c.Request().Context(), c.Param("id"), req.Name, req.Description, req.Color)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, res)
}

func (h *Handler) DeleteGroup(c echo.Context) error {
	res := h.news.DeleteGroup(c.Request().Context(), c.Param("id"))
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, res)
}
