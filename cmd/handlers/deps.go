package handlers

import (
	"context"
	"time"

	"gamepress/internal/assemble"
	"gamepress/internal/config"
	"gamepress/internal/email"
	"gamepress/internal/generate"
	"gamepress/internal/images"
	"gamepress/internal/llm"
	"gamepress/internal/logger"
	"gamepress/internal/newsletter"
	"gamepress/internal/photos"
	"gamepress/internal/playstore"
	"gamepress/internal/research"
	"gamepress/internal/store"
	"gamepress/internal/topics"
)

// newStore opens the Firestore-backed document store.
func newStore(ctx context.Context) (store.Store, error) {
	return store.NewFirestore(ctx, config.GetFirestore())
}

// newPhotoFinder builds the stock-photo finder from config. A missing API
// key degrades to a provider that finds nothing, which leaves the curated
// image pool as the only photo source.
func newPhotoFinder() *photos.Finder {
	cfg := config.GetPhotos()
	factory := photos.NewProviderFactory()

	providerType := photos.ProviderType(cfg.DefaultProvider)
	provider, err := factory.CreateProvider(providerType, map[string]string{
		"access_key": cfg.Providers.Unsplash.AccessKey,
		"api_key":    cfg.Providers.Pexels.APIKey,
	})
	if err != nil {
		logger.Warn("photo provider unavailable, using curated images only",
			"provider", cfg.DefaultProvider, "error", err)
		provider = photos.NewMockProvider()
	}

	return photos.NewFinder(provider, cfg.PerPage, cfg.Orientation)
}

func newPlayStoreClient() *playstore.Client {
	cfg := config.GetPlayStore()
	rateLimit, _ := time.ParseDuration(cfg.RateLimit)
	timeout, _ := time.ParseDuration(cfg.Timeout)
	return playstore.New(playstore.Options{
		Language:  cfg.Language,
		Country:   cfg.Country,
		RateLimit: rateLimit,
		Timeout:   timeout,
	})
}

// newPipeline wires the full article pipeline from configuration.
func newPipeline(st store.Store) (*generate.Pipeline, error) {
	gen, err := llm.NewFromConfig(config.GetAI())
	if err != nil {
		return nil, err
	}

	finder := newPhotoFinder()
	resolver := images.NewResolver(config.ImageDelay(),
		images.NewGameCardStrategy(newPlayStoreClient()),
		images.NewStockPhotoStrategy(finder),
		images.NewCuratedStrategy(finder),
	)

	pipelineCfg := config.GetPipeline()
	return generate.NewPipeline(
		topics.NewSelector(),
		research.New(gen),
		generate.NewGenerator(gen, pipelineCfg.WordTargetMin, pipelineCfg.WordTargetMax),
		resolver,
		finder,
		assemble.New(),
		st,
	), nil
}

// newNewsletterService builds the newsletter service; the mailer is only
// attached when a Brevo key is configured.
func newNewsletterService(st store.Store) *newsletter.Service {
	cfg := config.GetEmail()
	var mailer newsletter.WelcomeSender
	if cfg.BrevoAPIKey != "" {
		timeout, _ := time.ParseDuration(cfg.Timeout)
		mailer = email.New(email.Options{
			APIKey:      cfg.BrevoAPIKey,
			FromAddress: cfg.FromAddress,
			FromName:    cfg.FromName,
			DailyQuota:  cfg.DailyQuota,
			Timeout:     timeout,
		})
	} else {
		logger.Warn("BREVO_API_KEY not set, welcome emails disabled")
	}
	return newsletter.New(st, mailer)
}
