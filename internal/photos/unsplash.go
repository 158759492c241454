package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gamepress/internal/core"
)

// UnsplashProvider implements the Provider interface using the Unsplash
// search API.
type UnsplashProvider struct {
	client    *http.Client
	accessKey string
	baseURL   string
}

func NewUnsplashProvider(accessKey string) *UnsplashProvider {
	return &UnsplashProvider{
		client:    &http.Client{Timeout: 15 * time.Second},
		accessKey: accessKey,
		baseURL:   "https://api.unsplash.com",
	}
}

func (u *UnsplashProvider) GetName() string {
	return "Unsplash"
}

type unsplashResponse struct {
	Results []struct {
		ID   string `json:"id"`
		URLs struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

func (u *UnsplashProvider) SearchPhotos(ctx context.Context, query string, config Config) ([]core.Photo, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(max(config.Page, 1)))
	params.Set("per_page", strconv.Itoa(max(config.PerPage, 1)))
	if config.Orientation != "" {
		params.Set("orientation", config.Orientation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status: %d", resp.StatusCode)
	}

	var parsed unsplashResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	photos := make([]core.Photo, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		photos = append(photos, core.Photo{
			ID:         r.ID,
			Regular:    r.URLs.Regular,
			Small:      r.URLs.Small,
			Credit:     r.User.Name,
			ProviderID: "unsplash",
		})
	}
	return photos, nil
}
