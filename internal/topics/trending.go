package topics

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Labelled lists in the trend-discovery response. HOT_GAMES is deliberately
// excluded: game names make poor article topics on their own.
var trendingSections = []*regexp.Regexp{
	regexp.MustCompile(`(?i)TRENDING_TOPICS:\s*\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)DEBATES:\s*\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)TECH:\s*\[([^\]]+)\]`),
}

const maxTopicLength = 120

// ExtractTrendingTopic parses the labelled lists out of a trend-discovery
// response and returns one of their entries at random. ok is false when the
// response contains no usable topic; callers fall back to predefined lists.
func (s *Selector) ExtractTrendingTopic(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	var topics []string
	for _, section := range trendingSections {
		m := section.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		for _, item := range strings.Split(m[1], ",") {
			topic := cleanTopic(item)
			if validTopic(topic) {
				topics = append(topics, topic)
			}
		}
	}

	if len(topics) == 0 {
		return "", false
	}
	return topics[s.rng.Intn(len(topics))], true
}

func cleanTopic(item string) string {
	item = strings.TrimSpace(item)
	item = strings.Trim(item, `'"`)
	return strings.TrimSpace(item)
}

// validTopic rejects entries that would produce broken titles: empty strings,
// multi-line fragments, and runaway prose the model sometimes emits in place
// of a list item.
func validTopic(topic string) bool {
	if topic == "" {
		return false
	}
	if utf8.RuneCountInString(topic) > maxTopicLength {
		return false
	}
	if strings.ContainsAny(topic, "\n\r") {
		return false
	}
	return true
}
