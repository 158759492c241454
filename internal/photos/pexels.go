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

// PexelsProvider implements the Provider interface using the Pexels API.
type PexelsProvider struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewPexelsProvider(apiKey string) *PexelsProvider {
	return &PexelsProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.pexels.com",
	}
}

func (p *PexelsProvider) GetName() string {
	return "Pexels"
}

type pexelsResponse struct {
	Photos []struct {
		ID  int64 `json:"id"`
		Src struct {
			Large2x string `json:"large2x"`
			Large   string `json:"large"`
			Medium  string `json:"medium"`
		} `json:"src"`
		Photographer string `json:"photographer"`
	} `json:"photos"`
}

func (p *PexelsProvider) SearchPhotos(ctx context.Context, query string, config Config) ([]core.Photo, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(max(config.Page, 1)))
	params.Set("per_page", strconv.Itoa(max(config.PerPage, 1)))
	if config.Orientation != "" {
		params.Set("orientation", config.Orientation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status: %d", resp.StatusCode)
	}

	var parsed pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	photos := make([]core.Photo, 0, len(parsed.Photos))
	for _, ph := range parsed.Photos {
		regular := ph.Src.Large2x
		if regular == "" {
			regular = ph.Src.Large
		}
		photos = append(photos, core.Photo{
			ID:         strconv.FormatInt(ph.ID, 10),
			Regular:    regular,
			Small:      ph.Src.Medium,
			Credit:     ph.Photographer,
			ProviderID: "pexels",
		})
	}
	return photos, nil
}
