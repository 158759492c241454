// Package relevance scores articles and breaking news against a search term
// and powers the content search endpoint. Scoring is a weighted sum of
// field matches, title matches counting most.
package relevance

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"gamepress/internal/core"
	"gamepress/internal/store"
)

// Field weights.
const (
	titleWeight       = 10
	titlePrefixBonus  = 5
	contentMaxPoints  = 5
	excerptWeight     = 3
	categoryWeight    = 7
	authorWeight      = 2
	minSearchTermSize = 2
)

// ResultType distinguishes what a search hit points at.
type ResultType string

const (
	ResultArticle  ResultType = "article"
	ResultBreaking ResultType = "breaking-news"
)

// Result is one search hit with its relevance score.
type Result struct {
	Type     ResultType         `json:"type"`
	Article  *core.Article      `json:"article,omitempty"`
	Breaking *core.BreakingNews `json:"breaking,omitempty"`
	Score    int                `json:"relevanceScore"`
}

// ScoreArticle computes the relevance of an article for term. Zero means no
// match.
func ScoreArticle(a *core.Article, term string) int {
	term = normalizeTerm(term)
	if term == "" {
		return 0
	}

	score := scoreTitleContent(a.Title, a.Content, term)
	if strings.Contains(strings.ToLower(a.Excerpt), term) {
		score += excerptWeight
	}
	if strings.Contains(strings.ToLower(a.Category), term) {
		score += categoryWeight
	}
	if strings.Contains(strings.ToLower(a.Author), term) {
		score += authorWeight
	}
	return score
}

// ScoreBreaking computes the relevance of a breaking news item for term.
func ScoreBreaking(n *core.BreakingNews, term string) int {
	term = normalizeTerm(term)
	if term == "" {
		return 0
	}
	return scoreTitleContent(n.Title, n.Content, term)
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func scoreTitleContent(title, content, term string) int {
	score := 0

	lowerTitle := strings.ToLower(title)
	if strings.Contains(lowerTitle, term) {
		score += titleWeight
		if strings.HasPrefix(lowerTitle, term) {
			score += titlePrefixBonus
		}
	}

	lowerContent := strings.ToLower(content)
	if strings.Contains(lowerContent, term) {
		occurrences := strings.Count(lowerContent, term)
		score += min(occurrences, contentMaxPoints)
	}
	return score
}

// Searcher runs content search over the document store.
type Searcher struct {
	store store.Store
}

func NewSearcher(st store.Store) *Searcher {
	return &Searcher{store: st}
}

// Search scores published articles and all breaking news against term and
// returns matches sorted by descending relevance. Terms shorter than two
// characters return no results.
func (s *Searcher) Search(ctx context.Context, term string) ([]Result, error) {
	if len([]rune(normalizeTerm(term))) < minSearchTermSize {
		return nil, nil
	}

	articles, err := s.store.ListPublishedArticles(ctx)
	if err != nil {
		return nil, err
	}

	var results []Result
	for i := range articles {
		if score := ScoreArticle(&articles[i], term); score > 0 {
			results = append(results, Result{Type: ResultArticle, Article: &articles[i], Score: score})
		}
	}

	news, err := s.store.ListBreakingNews(ctx)
	if err != nil {
		return nil, err
	}
	for i := range news {
		if score := ScoreBreaking(&news[i], term); score > 0 {
			results = append(results, Result{Type: ResultBreaking, Breaking: &news[i], Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

// staticSuggestions are always offered alongside the category-derived ones.
var staticSuggestions = []string{"RPG", "Estrategia", "Acción", "Puzzle", "TOP 5", "Review"}

const maxSuggestions = 10

var nonWord = regexp.MustCompile(`\s+`)

// Suggestions returns up to ten search suggestions: the categories of
// published articles first, then common gaming keywords.
func (s *Searcher) Suggestions(ctx context.Context) ([]string, error) {
	articles, err := s.store.ListPublishedArticles(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var suggestions []string
	add := func(v string) {
		v = nonWord.ReplaceAllString(strings.TrimSpace(v), " ")
		if v == "" || seen[strings.ToLower(v)] {
			return
		}
		seen[strings.ToLower(v)] = true
		suggestions = append(suggestions, v)
	}

	for _, a := range articles {
		add(a.Category)
	}
	for _, kw := range staticSuggestions {
		add(kw)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}
