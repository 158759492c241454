package playstore

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gamepress/internal/core"
)

// ldApp mirrors the schema.org SoftwareApplication JSON-LD block the details
// page embeds. It is the most stable part of the page markup.
type ldApp struct {
	Type            string   `json:"@type"`
	Name            string   `json:"name"`
	Image           string   `json:"image"`
	Description     string   `json:"description"`
	Screenshot      []string `json:"screenshot"`
	AppCategory     string   `json:"applicationCategory"`
	AggregateRating struct {
		RatingValue json.Number `json:"ratingValue"`
	} `json:"aggregateRating"`
	Author struct {
		Name string `json:"name"`
	} `json:"author"`
	Offers []struct {
		Price json.Number `json:"price"`
	} `json:"offers"`
}

func parseAppPage(doc *goquery.Document) *core.GameInfo {
	info := &core.GameInfo{}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var app ldApp
		if err := json.Unmarshal([]byte(s.Text()), &app); err != nil {
			return true
		}
		if app.Type != "SoftwareApplication" && app.Type != "MobileApplication" {
			return true
		}

		info.Title = app.Name
		info.Icon = app.Image
		info.Summary = app.Description
		info.Screenshots = app.Screenshot
		info.Genre = humanizeCategory(app.AppCategory)
		info.Developer = app.Author.Name
		if score, err := app.AggregateRating.RatingValue.Float64(); err == nil {
			info.Score = score
		}
		if len(app.Offers) > 0 {
			price, err := app.Offers[0].Price.Float64()
			info.Free = err == nil && price == 0
			if !info.Free {
				info.Price = app.Offers[0].Price.String()
			}
		}
		return false
	})

	info.MinInstalls = parseInstalls(findInstallsText(doc))
	return info
}

// findInstallsText locates the download counter, which sits next to a label
// reading "Descargas" (or "Downloads" on non-Spanish pages).
func findInstallsText(doc *goquery.Document) string {
	var installs string
	doc.Find("div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		label := strings.TrimSpace(s.Text())
		if label != "Descargas" && label != "Downloads" {
			return true
		}
		if prev := s.Prev(); prev.Length() > 0 {
			installs = strings.TrimSpace(prev.Text())
			return false
		}
		return true
	})
	return installs
}

var installsPattern = regexp.MustCompile(`^([\d.,]+)\s*(mil|[kKMB])?\s*\+?$`)

// parseInstalls turns the counter text ("10 M+", "500 mil+", "1000+") into a
// minimum install count. Unparseable text maps to 0.
func parseInstalls(text string) int64 {
	m := installsPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0
	}

	num := strings.ReplaceAll(m[1], ",", "")
	num = strings.ReplaceAll(num, ".", "")
	value, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0
	}

	switch strings.ToLower(m[2]) {
	case "mil", "k":
		value *= 1_000
	case "m":
		value *= 1_000_000
	case "b":
		value *= 1_000_000_000
	}
	return value
}

// FormatInstalls renders an install count the way the store shows it:
// 12_000_000 becomes "12M+".
func FormatInstalls(minInstalls int64) string {
	switch {
	case minInstalls <= 0:
		return "N/A"
	case minInstalls >= 1_000_000_000:
		return fmt.Sprintf("%.1fB+", float64(minInstalls)/1_000_000_000)
	case minInstalls >= 1_000_000:
		return fmt.Sprintf("%.0fM+", float64(minInstalls)/1_000_000)
	case minInstalls >= 1_000:
		return fmt.Sprintf("%.0fK+", float64(minInstalls)/1_000)
	default:
		return fmt.Sprintf("%d+", minInstalls)
	}
}

// humanizeCategory maps the store's category codes ("GAME_STRATEGY") to a
// readable genre ("Strategy").
func humanizeCategory(code string) string {
	code = strings.TrimPrefix(code, "GAME_")
	if code == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(code), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
