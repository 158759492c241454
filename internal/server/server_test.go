package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamepress/internal/core"
	"gamepress/internal/newsletter"
	"gamepress/internal/relevance"
	"gamepress/internal/store"
)

func newTestAPI(t *testing.T) (*echo.Echo, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	h := &Handler{
		store:    mem,
		news:     newsletter.New(mem, nil),
		searcher: relevance.NewSearcher(mem),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	e := echo.New()
	h.Register(e)
	return e, mem
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e, _ := newTestAPI(t)
	rec := doJSON(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateArticle(t *testing.T) {
	e, mem := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/articles", `{"title":"Título","content":"Cuerpo","status":"published","slug":"titulo"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	saved, err := mem.GetArticle(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Título", saved.Title)
}

func TestCreateArticleValidation(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/articles", `{"title":"","content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateArticle(t *testing.T) {
	e, mem := newTestAPI(t)

	id, err := mem.CreateArticle(context.Background(), &core.Article{Title: "Viejo", Content: "c", Status: core.StatusPublished})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodPut, "/api/articles", `{"id":"`+id+`","title":"Nuevo"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	saved, err := mem.GetArticle(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", saved.Title)
}

func TestUpdateArticleMissingID(t *testing.T) {
	e, _ := newTestAPI(t)
	rec := doJSON(e, http.MethodPut, "/api/articles", `{"title":"Nuevo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateArticleNotFound(t *testing.T) {
	e, _ := newTestAPI(t)
	rec := doJSON(e, http.MethodPut, "/api/articles", `{"id":"nope","title":"Nuevo"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteArticle(t *testing.T) {
	e, mem := newTestAPI(t)

	id, err := mem.CreateArticle(context.Background(), &core.Article{Title: "t", Content: "c"})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodDelete, "/api/articles", `{"id":"`+id+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/articles", `{"id":"`+id+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/articles", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArticleBySlug(t *testing.T) {
	e, mem := newTestAPI(t)

	_, err := mem.CreateArticle(context.Background(), &core.Article{
		Title: "t", Content: "c", Slug: "mi-articulo", Status: core.StatusPublished,
	})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/api/articles/mi-articulo", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/articles/no-existe", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListArticlesFilters(t *testing.T) {
	e, mem := newTestAPI(t)
	ctx := context.Background()

	for _, a := range []*core.Article{
		{Title: "a", Content: "c", Category: "RPG", Status: core.StatusPublished, Featured: true},
		{Title: "b", Content: "c", Category: "Puzzle", Status: core.StatusPublished},
		{Title: "d", Content: "c", Category: "RPG", Status: core.StatusDraft},
	} {
		_, err := mem.CreateArticle(ctx, a)
		require.NoError(t, err)
	}

	var articles []core.Article

	rec := doJSON(e, http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	assert.Len(t, articles, 2)

	rec = doJSON(e, http.MethodGet, "/api/articles?category=RPG", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	assert.Len(t, articles, 1)

	rec = doJSON(e, http.MethodGet, "/api/articles?featured=true", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	assert.Len(t, articles, 1)
	assert.Equal(t, "a", articles[0].Title)
}

func TestBreakingEndpoints(t *testing.T) {
	e, mem := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/breaking", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err := mem.PublishBreakingNews(context.Background(), &core.BreakingNews{Title: "Noticia", Content: "c"})
	require.NoError(t, err)

	rec = doJSON(e, http.MethodGet, "/api/breaking", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var news core.BreakingNews
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &news))
	assert.Equal(t, "Noticia", news.Title)
	assert.True(t, news.Active)

	rec = doJSON(e, http.MethodGet, "/api/breaking/history", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubscribeEndpoint(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/newsletter/subscribe", `{"email":"ana@example.com","name":"Ana"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Duplicate.
	rec = doJSON(e, http.MethodPost, "/api/newsletter/subscribe", `{"email":"ana@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Invalid.
	rec = doJSON(e, http.MethodPost, "/api/newsletter/subscribe", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	e, mem := newTestAPI(t)

	_, err := mem.CreateArticle(context.Background(), &core.Article{
		Title: "Puzzle imprescindibles", Content: "puzzle", Status: core.StatusPublished,
	})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/api/search?q=puzzle", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []relevance.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, relevance.ResultArticle, results[0].Type)

	rec = doJSON(e, http.MethodGet, "/api/search?q=x", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestSubscriberAdminEndpoints(t *testing.T) {
	e, _ := newTestAPI(t)

	doJSON(e, http.MethodPost, "/api/newsletter/subscribe", `{"email":"a@example.com"}`)
	doJSON(e, http.MethodPost, "/api/newsletter/subscribe", `{"email":"b@example.com"}`)

	rec := doJSON(e, http.MethodGet, "/api/subscribers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var subs []core.Subscriber
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subs))
	assert.Len(t, subs, 2)

	rec = doJSON(e, http.MethodGet, "/api/subscribers/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats newsletter.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)

	rec = doJSON(e, http.MethodGet, "/api/subscribers/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "subscribers.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Email,Nombre"))

	rec = doJSON(e, http.MethodPut, "/api/subscribers/bulk", `{"ids":[],"updates":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/subscribers/bulk", `{"ids":["`+subs[0].ID+`"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var bulk newsletter.BulkResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bulk))
	assert.Equal(t, newsletter.BulkResult{Success: 1, Failed: 0}, bulk)
}

func TestAdminKeyProtectsAdminRoutes(t *testing.T) {
	mem := store.NewMemory()
	h := &Handler{
		store:    mem,
		news:     newsletter.New(mem, nil),
		searcher: relevance.NewSearcher(mem),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		adminKey: "secreto",
	}
	e := echo.New()
	h.Register(e)

	// Public routes stay open.
	rec := doJSON(e, http.MethodGet, "/api/articles", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Admin routes require the key.
	rec = doJSON(e, http.MethodGet, "/api/subscribers", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/subscribers", nil)
	req.Header.Set("X-Admin-Key", "secreto")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGroupEndpoints(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(e, http.MethodPost, "/api/groups", `{"name":"Esports","description":"Torneos"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created newsletter.GroupResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.GroupID)

	rec = doJSON(e, http.MethodPost, "/api/groups", `{"name":"E"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/groups/"+created.GroupID, `{"color":"#123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/groups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []core.SubscriberGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "#123456", groups[0].Color)

	rec = doJSON(e, http.MethodDelete, "/api/groups/"+created.GroupID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
