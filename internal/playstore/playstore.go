// Package playstore scrapes Google Play for game metadata used in inline
// game cards. Lookups are cached for the lifetime of the client so one
// pipeline run hits the store at most once per game name.
package playstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gamepress/internal/core"
	"gamepress/internal/logger"
)

// ErrNotFound indicates the search returned no apps for the term.
var ErrNotFound = errors.New("playstore: app not found")

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Options configures a Client. Zero values fall back to Spanish store
// defaults and conservative rate limiting.
type Options struct {
	Language  string
	Country   string
	RateLimit time.Duration
	Timeout   time.Duration
}

// AppResult is one entry from a store search.
type AppResult struct {
	AppID string
	Title string
}

// Client fetches and parses Play Store pages.
type Client struct {
	client    *http.Client
	userAgent string
	lang      string
	country   string
	rateLimit time.Duration
	lastCall  time.Time
	baseURL   string

	mu    sync.Mutex
	cache map[string]*core.GameInfo
}

func New(opts Options) *Client {
	if opts.Language == "" {
		opts.Language = "es"
	}
	if opts.Country == "" {
		opts.Country = "es"
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: defaultUserAgent,
		lang:      opts.Language,
		country:   opts.Country,
		rateLimit: opts.RateLimit,
		baseURL:   "https://play.google.com",
		cache:     make(map[string]*core.GameInfo),
	}
}

// Lookup finds the best Play Store match for a game name and returns its
// detailed metadata. Results are cached by lower-cased name; a cached miss
// is not stored, so transient failures can be retried on a later call.
func (c *Client) Lookup(ctx context.Context, name string) (*core.GameInfo, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, ErrNotFound
	}

	c.mu.Lock()
	if info, ok := c.cache[key]; ok {
		c.mu.Unlock()
		logger.Debug("play store cache hit", "name", name)
		return info, nil
	}
	c.mu.Unlock()

	results, err := c.Search(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	info, err := c.App(ctx, results[0].AppID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = info
	c.mu.Unlock()

	logger.Info("play store lookup", "name", name, "app_id", info.AppID, "title", info.Title)
	return info, nil
}

// Search queries the store's app search and returns the result app ids in
// page order.
func (c *Client) Search(ctx context.Context, term string) ([]AppResult, error) {
	searchURL := fmt.Sprintf(
		"%s/store/search?q=%s&c=apps&hl=%s&gl=%s",
		c.baseURL, url.QueryEscape(term), c.lang, c.country,
	)

	doc, err := c.fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	var results []AppResult
	seen := make(map[string]bool)
	doc.Find(`a[href^="/store/apps/details"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		appID := u.Query().Get("id")
		if appID == "" || seen[appID] {
			return
		}
		seen[appID] = true
		results = append(results, AppResult{
			AppID: appID,
			Title: strings.TrimSpace(s.Text()),
		})
	})

	return results, nil
}

// App fetches the details page for appID and extracts the metadata the game
// card needs.
func (c *Client) App(ctx context.Context, appID string) (*core.GameInfo, error) {
	detailsURL := fmt.Sprintf(
		"%s/store/apps/details?id=%s&hl=%s&gl=%s",
		c.baseURL, url.QueryEscape(appID), c.lang, c.country,
	)

	doc, err := c.fetch(ctx, detailsURL)
	if err != nil {
		return nil, fmt.Errorf("app %q: %w", appID, err)
	}

	info := parseAppPage(doc)
	info.AppID = appID
	info.URL = detailsURL
	if info.Title == "" {
		return nil, fmt.Errorf("app %q: could not parse details page", appID)
	}
	return info, nil
}

func (c *Client) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if elapsed := time.Since(c.lastCall); elapsed < c.rateLimit {
		time.Sleep(c.rateLimit - elapsed)
	}
	c.lastCall = time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", c.lang)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
