package store

import (
	"context"
	"errors"

	"gamepress/internal/core"
)

// Collection names in the document store.
const (
	CollectionArticles     = "articles"
	CollectionBreakingNews = "breaking_news"
	CollectionSubscribers  = "subscribers"
	CollectionGroups       = "subscriberGroups"
	CollectionAIConfig     = "ai_config"
)

// ErrNotFound is returned when an operation targets a document id that
// does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the document-store surface the rest of the application depends
// on. Firestore backs it in production; Memory backs it in tests.
type Store interface {
	// Articles.
	CreateArticle(ctx context.Context, article *core.Article) (string, error)
	UpdateArticle(ctx context.Context, id string, updates map[string]any) error
	DeleteArticle(ctx context.Context, id string) error
	GetArticle(ctx context.Context, id string) (*core.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*core.Article, error)
	ListPublishedArticles(ctx context.Context) ([]core.Article, error)
	ListFeaturedArticles(ctx context.Context, limit int) ([]core.Article, error)
	ListLatestArticles(ctx context.Context, limit int) ([]core.Article, error)
	ListArticlesByCategory(ctx context.Context, category string) ([]core.Article, error)

	// Breaking news.
	PublishBreakingNews(ctx context.Context, news *core.BreakingNews) (string, error)
	ActiveBreakingNews(ctx context.Context) (*core.BreakingNews, error)
	ListBreakingNews(ctx context.Context) ([]core.BreakingNews, error)

	// Subscribers.
	CreateSubscriber(ctx context.Context, sub *core.Subscriber) (string, error)
	FindSubscriberByEmail(ctx context.Context, email string) (*core.Subscriber, error)
	UpdateSubscriber(ctx context.Context, id string, updates map[string]any) error
	DeleteSubscriber(ctx context.Context, id string) error
	ListSubscribers(ctx context.Context) ([]core.Subscriber, error)
	ListSubscribersByGroup(ctx context.Context, groupID string) ([]core.Subscriber, error)

	// Subscriber groups.
	CreateGroup(ctx context.Context, group *core.SubscriberGroup) (string, error)
	UpdateGroup(ctx context.Context, id string, updates map[string]any) error
	DeleteGroup(ctx context.Context, id string) error
	ListGroups(ctx context.Context) ([]core.SubscriberGroup, error)

	// AI configuration.
	GetPromptConfig(ctx context.Context, id string) (*core.PromptConfig, error)
	SetPromptConfig(ctx context.Context, cfg *core.PromptConfig) error
	GetGeneralConfig(ctx context.Context) (*core.GeneralConfig, error)
	SetGeneralConfig(ctx context.Context, cfg *core.GeneralConfig) error

	Close() error
}
