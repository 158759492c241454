package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamepress/internal/config"
	"gamepress/internal/core"
)

// Firestore implements Store on top of Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore connects to the configured Firestore project. A credentials
// file is optional; without one the ambient application-default
// credentials are used.
func NewFirestore(ctx context.Context, cfg config.Firestore) (*Firestore, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

// Close releases the underlying gRPC connection.
func (f *Firestore) Close() error {
	return f.client.Close()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func updatesFromMap(updates map[string]any) []firestore.Update {
	out := make([]firestore.Update, 0, len(updates))
	for path, value := range updates {
		out = append(out, firestore.Update{Path: path, Value: value})
	}
	return out
}

// CreateArticle adds the article and writes its assigned document id back
// into the id field, mirroring what the site expects to read.
func (f *Firestore) CreateArticle(ctx context.Context, article *core.Article) (string, error) {
	ref, _, err := f.client.Collection(CollectionArticles).Add(ctx, article)
	if err != nil {
		return "", fmt.Errorf("failed to create article: %w", err)
	}
	if _, err := ref.Update(ctx, []firestore.Update{{Path: "id", Value: ref.ID}}); err != nil {
		return "", fmt.Errorf("failed to write back article id: %w", err)
	}
	article.ID = ref.ID
	return ref.ID, nil
}

func (f *Firestore) UpdateArticle(ctx context.Context, id string, updates map[string]any) error {
	updates["updatedAt"] = firestore.ServerTimestamp
	_, err := f.client.Collection(CollectionArticles).Doc(id).Update(ctx, updatesFromMap(updates))
	if isNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (f *Firestore) DeleteArticle(ctx context.Context, id string) error {
	ref := f.client.Collection(CollectionArticles).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}

func (f *Firestore) GetArticle(ctx context.Context, id string) (*core.Article, error) {
	snap, err := f.client.Collection(CollectionArticles).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return articleFromSnap(snap)
}

func (f *Firestore) GetArticleBySlug(ctx context.Context, slug string) (*core.Article, error) {
	iter := f.client.Collection(CollectionArticles).
		Where("slug", "==", slug).
		Where("status", "==", core.StatusPublished).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return articleFromSnap(snap)
}

func (f *Firestore) ListPublishedArticles(ctx context.Context) ([]core.Article, error) {
	q := f.client.Collection(CollectionArticles).
		Where("status", "==", core.StatusPublished).
		OrderBy("createdAt", firestore.Desc)
	return f.collectArticles(ctx, q.Documents(ctx))
}

func (f *Firestore) ListFeaturedArticles(ctx context.Context, limit int) ([]core.Article, error) {
	q := f.client.Collection(CollectionArticles).
		Where("status", "==", core.StatusPublished).
		Where("featured", "==", true).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return f.collectArticles(ctx, q.Documents(ctx))
}

func (f *Firestore) ListLatestArticles(ctx context.Context, limit int) ([]core.Article, error) {
	q := f.client.Collection(CollectionArticles).
		Where("status", "==", core.StatusPublished).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return f.collectArticles(ctx, q.Documents(ctx))
}

func (f *Firestore) ListArticlesByCategory(ctx context.Context, category string) ([]core.Article, error) {
	q := f.client.Collection(CollectionArticles).
		Where("status", "==", core.StatusPublished).
		Where("category", "==", category).
		OrderBy("createdAt", firestore.Desc)
	return f.collectArticles(ctx, q.Documents(ctx))
}

func (f *Firestore) collectArticles(ctx context.Context, iter *firestore.DocumentIterator) ([]core.Article, error) {
	defer iter.Stop()
	var articles []core.Article
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		article, err := articleFromSnap(snap)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

func articleFromSnap(snap *firestore.DocumentSnapshot) (*core.Article, error) {
	var article core.Article
	if err := snap.DataTo(&article); err != nil {
		return nil, fmt.Errorf("failed to decode article %s: %w", snap.Ref.ID, err)
	}
	article.ID = snap.Ref.ID
	return &article, nil
}

// PublishBreakingNews deactivates every currently-active item and writes
// the new one as active. The writes go through a bulk writer, so the
// exactly-one-active invariant is best-effort, not transactional.
func (f *Firestore) PublishBreakingNews(ctx context.Context, news *core.BreakingNews) (string, error) {
	active := f.client.Collection(CollectionBreakingNews).
		Where("active", "==", true).
		Documents(ctx)
	defer active.Stop()

	bw := f.client.BulkWriter(ctx)
	for {
		snap, err := active.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to list active breaking news: %w", err)
		}
		if _, err := bw.Update(snap.Ref, []firestore.Update{{Path: "active", Value: false}}); err != nil {
			return "", fmt.Errorf("failed to queue deactivation: %w", err)
		}
	}

	ref := f.client.Collection(CollectionBreakingNews).NewDoc()
	news.ID = ref.ID
	news.Active = true
	if _, err := bw.Set(ref, news); err != nil {
		return "", fmt.Errorf("failed to queue breaking news write: %w", err)
	}
	bw.End()

	return ref.ID, nil
}

func (f *Firestore) ActiveBreakingNews(ctx context.Context) (*core.BreakingNews, error) {
	iter := f.client.Collection(CollectionBreakingNews).
		Where("active", "==", true).
		OrderBy("createdAt", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var news core.BreakingNews
	if err := snap.DataTo(&news); err != nil {
		return nil, fmt.Errorf("failed to decode breaking news %s: %w", snap.Ref.ID, err)
	}
	news.ID = snap.Ref.ID
	return &news, nil
}

func (f *Firestore) ListBreakingNews(ctx context.Context) ([]core.BreakingNews, error) {
	iter := f.client.Collection(CollectionBreakingNews).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var items []core.BreakingNews
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var news core.BreakingNews
		if err := snap.DataTo(&news); err != nil {
			return nil, fmt.Errorf("failed to decode breaking news %s: %w", snap.Ref.ID, err)
		}
		news.ID = snap.Ref.ID
		items = append(items, news)
	}
	return items, nil
}

func (f *Firestore) CreateSubscriber(ctx context.Context, sub *core.Subscriber) (string, error) {
	sub.Email = strings.ToLower(sub.Email)
	ref, _, err := f.client.Collection(CollectionSubscribers).Add(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("failed to create subscriber: %w", err)
	}
	sub.ID = ref.ID
	return ref.ID, nil
}

func (f *Firestore) FindSubscriberByEmail(ctx context.Context, email string) (*core.Subscriber, error) {
	iter := f.client.Collection(CollectionSubscribers).
		Where("email", "==", strings.ToLower(email)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return subscriberFromSnap(snap)
}

func (f *Firestore) UpdateSubscriber(ctx context.Context, id string, updates map[string]any) error {
	_, err := f.client.Collection(CollectionSubscribers).Doc(id).Update(ctx, updatesFromMap(updates))
	if isNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (f *Firestore) DeleteSubscriber(ctx context.Context, id string) error {
	ref := f.client.Collection(CollectionSubscribers).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}

func (f *Firestore) ListSubscribers(ctx context.Context) ([]core.Subscriber, error) {
	iter := f.client.Collection(CollectionSubscribers).
		OrderBy("subscribedAt", firestore.Desc).
		Documents(ctx)
	return f.collectSubscribers(iter)
}

func (f *Firestore) ListSubscribersByGroup(ctx context.Context, groupID string) ([]core.Subscriber, error) {
	iter := f.client.Collection(CollectionSubscribers).
		Where("groups", "array-contains", groupID).
		Documents(ctx)
	return f.collectSubscribers(iter)
}

func (f *Firestore) collectSubscribers(iter *firestore.DocumentIterator) ([]core.Subscriber, error) {
	defer iter.Stop()
	var subs []core.Subscriber
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		sub, err := subscriberFromSnap(snap)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

func subscriberFromSnap(snap *firestore.DocumentSnapshot) (*core.Subscriber, error) {
	var sub core.Subscriber
	if err := snap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscriber %s: %w", snap.Ref.ID, err)
	}
	sub.ID = snap.Ref.ID
	return &sub, nil
}

func (f *Firestore) CreateGroup(ctx context.Context, group *core.SubscriberGroup) (string, error) {
	ref, _, err := f.client.Collection(CollectionGroups).Add(ctx, group)
	if err != nil {
		return "", fmt.Errorf("failed to create group: %w", err)
	}
	group.ID = ref.ID
	return ref.ID, nil
}

func (f *Firestore) UpdateGroup(ctx context.Context, id string, updates map[string]any) error {
	_, err := f.client.Collection(CollectionGroups).Doc(id).Update(ctx, updatesFromMap(updates))
	if isNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (f *Firestore) DeleteGroup(ctx context.Context, id string) error {
	ref := f.client.Collection(CollectionGroups).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}

func (f *Firestore) ListGroups(ctx context.Context) ([]core.SubscriberGroup, error) {
	iter := f.client.Collection(CollectionGroups).Documents(ctx)
	defer iter.Stop()

	var groups []core.SubscriberGroup
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var group core.SubscriberGroup
		if err := snap.DataTo(&group); err != nil {
			return nil, fmt.Errorf("failed to decode group %s: %w", snap.Ref.ID, err)
		}
		group.ID = snap.Ref.ID
		groups = append(groups, group)
	}
	return groups, nil
}

func (f *Firestore) GetPromptConfig(ctx context.Context, id string) (*core.PromptConfig, error) {
	snap, err := f.client.Collection(CollectionAIConfig).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var cfg core.PromptConfig
	if err := snap.DataTo(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode prompt config %s: %w", id, err)
	}
	cfg.ID = snap.Ref.ID
	return &cfg, nil
}

func (f *Firestore) SetPromptConfig(ctx context.Context, cfg *core.PromptConfig) error {
	cfg.UpdatedAt = time.Now().UTC()
	_, err := f.client.Collection(CollectionAIConfig).Doc(cfg.ID).Set(ctx, cfg, firestore.MergeAll)
	return err
}

func (f *Firestore) GetGeneralConfig(ctx context.Context) (*core.GeneralConfig, error) {
	snap, err := f.client.Collection(CollectionAIConfig).Doc("general").Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var cfg core.GeneralConfig
	if err := snap.DataTo(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode general config: %w", err)
	}
	return &cfg, nil
}

func (f *Firestore) SetGeneralConfig(ctx context.Context, cfg *core.GeneralConfig) error {
	cfg.ID = "general"
	_, err := f.client.Collection(CollectionAIConfig).Doc("general").Set(ctx, cfg, firestore.MergeAll)
	return err
}
