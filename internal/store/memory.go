package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamepress/internal/core"
)

// Memory is an in-memory Store used by tests and dry runs. It mirrors the
// Firestore semantics the application relies on, including the id
// write-back on article creation and the deactivate-then-activate breaking
// news publish.
type Memory struct {
	mu          sync.Mutex
	articles    map[string]core.Article
	breaking    map[string]core.BreakingNews
	subscribers map[string]core.Subscriber
	groups      map[string]core.SubscriberGroup
	prompts     map[string]core.PromptConfig
	general     *core.GeneralConfig
	clock       time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		articles:    make(map[string]core.Article),
		breaking:    make(map[string]core.BreakingNews),
		subscribers: make(map[string]core.Subscriber),
		groups:      make(map[string]core.SubscriberGroup),
		prompts:     make(map[string]core.PromptConfig),
		clock:       time.Now().UTC(),
	}
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// tick returns a strictly increasing timestamp so createdAt ordering is
// deterministic even within a single test run.
func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func (m *Memory) CreateArticle(ctx context.Context, article *core.Article) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	article.ID = id
	article.CreatedAt = m.tick()
	m.articles[id] = *article
	return id, nil
}

func (m *Memory) UpdateArticle(ctx context.Context, id string, updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	article, ok := m.articles[id]
	if !ok {
		return ErrNotFound
	}
	applyArticleUpdates(&article, updates)
	m.articles[id] = article
	return nil
}

func applyArticleUpdates(article *core.Article, updates map[string]any) {
	for path, value := range updates {
		switch path {
		case "title":
			article.Title, _ = value.(string)
		case "content":
			article.Content, _ = value.(string)
		case "excerpt":
			article.Excerpt, _ = value.(string)
		case "image":
			article.Image, _ = value.(string)
		case "category":
			article.Category, _ = value.(string)
		case "author":
			article.Author, _ = value.(string)
		case "slug":
			article.Slug, _ = value.(string)
		case "status":
			article.Status, _ = value.(string)
		case "featured":
			article.Featured, _ = value.(bool)
		}
	}
}

func (m *Memory) DeleteArticle(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[id]; !ok {
		return ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *Memory) GetArticle(ctx context.Context, id string) (*core.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	article, ok := m.articles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &article, nil
}

func (m *Memory) GetArticleBySlug(ctx context.Context, slug string) (*core.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, article := range m.articles {
		if article.Slug == slug && article.Status == core.StatusPublished {
			a := article
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) listArticles(filter func(core.Article) bool, limit int) []core.Article {
	var out []core.Article
	for _, article := range m.articles {
		if filter(article) {
			out = append(out, article)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *Memory) ListPublishedArticles(ctx context.Context) ([]core.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listArticles(func(a core.Article) bool { return a.Status == core.StatusPublished }, 0), nil
}

func (m *Memory) ListFeaturedArticles(ctx context.Context, limit int) ([]core.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listArticles(func(a core.Article) bool {
		return a.Status == core.StatusPublished && a.Featured
	}, limit), nil
}

func (m *Memory) ListLatestArticles(ctx context.Context, limit int) ([]core.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listArticles(func(a core.Article) bool { return a.Status == core.StatusPublished }, limit), nil
}

func (m *Memory) ListArticlesByCategory(ctx context.Context, category string) ([]core.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listArticles(func(a core.Article) bool {
		return a.Status == core.StatusPublished && a.Category == category
	}, 0), nil
}

func (m *Memory) PublishBreakingNews(ctx context.Context, news *core.BreakingNews) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, item := range m.breaking {
		if item.Active {
			item.Active = false
			m.breaking[id] = item
		}
	}

	id := uuid.NewString()
	news.ID = id
	news.Active = true
	news.CreatedAt = m.tick()
	m.breaking[id] = *news
	return id, nil
}

func (m *Memory) ActiveBreakingNews(ctx context.Context) (*core.BreakingNews, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var active []core.BreakingNews
	for _, item := range m.breaking {
		if item.Active {
			active = append(active, item)
		}
	}
	if len(active) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	return &active[0], nil
}

func (m *Memory) ListBreakingNews(ctx context.Context) ([]core.BreakingNews, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.BreakingNews, 0, len(m.breaking))
	for _, item := range m.breaking {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) CreateSubscriber(ctx context.Context, sub *core.Subscriber) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	sub.ID = id
	sub.Email = strings.ToLower(sub.Email)
	sub.SubscribedAt = m.tick()
	m.subscribers[id] = *sub
	return id, nil
}

func (m *Memory) FindSubscriberByEmail(ctx context.Context, email string) (*core.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.ToLower(email)
	for _, sub := range m.subscribers {
		if sub.Email == email {
			s := sub
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateSubscriber(ctx context.Context, id string, updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subscribers[id]
	if !ok {
		return ErrNotFound
	}
	for path, value := range updates {
		switch path {
		case "name":
			sub.Name, _ = value.(string)
		case "status":
			sub.Status, _ = value.(string)
		case "groups":
			if groups, ok := value.([]string); ok {
				sub.Groups = groups
			}
		}
	}
	m.subscribers[id] = sub
	return nil
}

func (m *Memory) DeleteSubscriber(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subscribers[id]; !ok {
		return ErrNotFound
	}
	delete(m.subscribers, id)
	return nil
}

func (m *Memory) ListSubscribers(ctx context.Context) ([]core.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.Subscriber, 0, len(m.subscribers))
	for _, sub := range m.subscribers {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubscribedAt.After(out[j].SubscribedAt) })
	return out, nil
}

func (m *Memory) ListSubscribersByGroup(ctx context.Context, groupID string) ([]core.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []core.Subscriber
	for _, sub := range m.subscribers {
		for _, g := range sub.Groups {
			if g == groupID {
				out = append(out, sub)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubscribedAt.After(out[j].SubscribedAt) })
	return out, nil
}

func (m *Memory) CreateGroup(ctx context.Context, group *core.SubscriberGroup) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	group.ID = id
	group.CreatedAt = m.tick()
	m.groups[id] = *group
	return id, nil
}

func (m *Memory) UpdateGroup(ctx context.Context, id string, updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	group, ok := m.groups[id]
	if !ok {
		return ErrNotFound
	}
	for path, value := range updates {
		switch path {
		case "name":
			group.Name, _ = value.(string)
		case "description":
			group.Description, _ = value.(string)
		case "color":
			group.Color, _ = value.(string)
		}
	}
	m.groups[id] = group
	return nil
}

func (m *Memory) DeleteGroup(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.groups[id]; !ok {
		return ErrNotFound
	}
	delete(m.groups, id)
	return nil
}

func (m *Memory) ListGroups(ctx context.Context) ([]core.SubscriberGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.SubscriberGroup, 0, len(m.groups))
	for _, group := range m.groups {
		out = append(out, group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetPromptConfig(ctx context.Context, id string) (*core.PromptConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, ok := m.prompts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &cfg, nil
}

func (m *Memory) SetPromptConfig(ctx context.Context, cfg *core.PromptConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg.UpdatedAt = m.tick()
	m.prompts[cfg.ID] = *cfg
	return nil
}

func (m *Memory) GetGeneralConfig(ctx context.Context) (*core.GeneralConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.general == nil {
		return nil, ErrNotFound
	}
	cfg := *m.general
	return &cfg, nil
}

func (m *Memory) SetGeneralConfig(ctx context.Context, cfg *core.GeneralConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *cfg
	c.ID = "general"
	m.general = &c
	return nil
}
