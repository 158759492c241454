// Package generate orchestrates the article pipeline: topic selection, web
// research, content generation, image resolution and final assembly into a
// published Firestore document.
package generate

import (
	"context"
	"fmt"

	"gamepress/internal/assemble"
	"gamepress/internal/core"
	"gamepress/internal/images"
	"gamepress/internal/logger"
	"gamepress/internal/photos"
	"gamepress/internal/research"
	"gamepress/internal/store"
	"gamepress/internal/topics"
)

// PipelineOptions parameterize one pipeline run. Options travel explicitly
// through Run; nothing in the pipeline reads process-global state.
type PipelineOptions struct {
	// ForceType pins the article format ("top5", "analysis", "comparison",
	// "guide"). Empty means random; unknown values log a warning and fall
	// back to random.
	ForceType string

	// Category overrides the derived search term used for research and
	// image lookups.
	Category string
}

// Pipeline wires the generation stages together.
type Pipeline struct {
	selector   *topics.Selector
	researcher *research.Researcher
	generator  *Generator
	resolver   *images.Resolver
	finder     *photos.Finder
	assembler  *assemble.Assembler
	store      store.Store
}

func NewPipeline(
	selector *topics.Selector,
	researcher *research.Researcher,
	generator *Generator,
	resolver *images.Resolver,
	finder *photos.Finder,
	assembler *assemble.Assembler,
	st store.Store,
) *Pipeline {
	return &Pipeline{
		selector:   selector,
		researcher: researcher,
		generator:  generator,
		resolver:   resolver,
		finder:     finder,
		assembler:  assembler,
		store:      st,
	}
}

// Run generates one article and publishes it. Research and image failures
// degrade; only content generation and the final store write are fatal.
func (p *Pipeline) Run(ctx context.Context, opts PipelineOptions) (*core.Article, error) {
	format := p.selector.PickFormat(opts.ForceType)

	// Non-top5 formats try to ride a current trend; top5 always uses its
	// fixed category rotation.
	var trendingTopic string
	if format.Type != core.TypeTop5 {
		raw := p.researcher.DiscoverTrends(ctx)
		if topic, ok := p.selector.ExtractTrendingTopic(raw); ok {
			trendingTopic = topic
		}
	}

	sel := p.selector.Select(format, trendingTopic)
	if opts.Category != "" {
		sel.SearchTerm = opts.Category
	}
	logger.Info("selected article topic",
		"type", string(sel.Type), "title", sel.Title, "search_term", sel.SearchTerm, "trending", sel.Trending)

	trendsInfo := p.researcher.GamingTrends(ctx, sel.SearchTerm)

	content, err := p.generator.Article(ctx, sel.Title, sel.Type, trendsInfo)
	if err != nil {
		return nil, err
	}

	content = p.resolver.Resolve(ctx, content)

	heroImage := p.finder.ArticleImage(ctx, sel.SearchTerm, photos.SizeHero, 0)

	article := &core.Article{
		Title:       sel.Title,
		Content:     content,
		Excerpt:     assemble.Excerpt(content),
		Image:       heroImage,
		Category:    sel.SearchTerm,
		Author:      p.assembler.Author(),
		PublishDate: p.assembler.PublishDate(),
		ReadTime:    assemble.ReadTime(content),
		Rating:      p.assembler.Rating(),
		Slug:        assemble.Slug(sel.Title),
		Featured:    p.assembler.Featured(),
		Type:        string(sel.Type),
		Status:      core.StatusPublished,
	}

	id, err := p.store.CreateArticle(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("failed to save article: %w", err)
	}

	logger.Info("article published",
		"id", id, "slug", article.Slug, "type", article.Type, "read_time", article.ReadTime)
	return article, nil
}

// RunBreaking generates and activates one breaking news item. It skips
// image resolution entirely and deactivates the previous ticker item in the
// same batched write.
func (p *Pipeline) RunBreaking(ctx context.Context) (*core.BreakingNews, error) {
	trendsInfo := p.researcher.BreakingNews(ctx)

	raw, err := p.generator.Breaking(ctx, trendsInfo)
	if err != nil {
		return nil, err
	}

	title, content := ParseBreaking(raw)

	news := &core.BreakingNews{
		Title:       title,
		Content:     content,
		Type:        "breaking",
		PublishDate: p.assembler.PublishDateTime(),
		Active:      true,
		Read:        false,
	}

	id, err := p.store.PublishBreakingNews(ctx, news)
	if err != nil {
		return nil, fmt.Errorf("failed to publish breaking news: %w", err)
	}

	logger.Info("breaking news published", "id", id, "title", news.Title)
	return news, nil
}
