// Package assemble derives the presentation fields of an article from its
// title and generated content: slug, excerpt, read time, rating, author,
// featured flag and the Spanish publish date.
package assemble

import (
	"math"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"gamepress/internal/topics"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	markdownPattern   = regexp.MustCompile("[#*_`]+")
	whitespacePattern = regexp.MustCompile(`\s+`)

	slugInvalid  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	slugReplacer = strings.NewReplacer(
		"á", "a", "à", "a", "ä", "a", "â", "a",
		"é", "e", "è", "e", "ë", "e", "ê", "e",
		"í", "i", "ì", "i", "ï", "i", "î", "i",
		"ó", "o", "ò", "o", "ö", "o", "ô", "o",
		"ú", "u", "ù", "u", "ü", "u", "û", "u",
		"ñ", "n",
	)
)

// Slug derives the URL slug for a title: lowercase, Spanish diacritics
// flattened, anything outside [a-z0-9-] collapsed into single hyphens, no
// leading or trailing hyphen.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = slugReplacer.Replace(s)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

const excerptLength = 200

// Excerpt returns the first 200 characters of content with HTML tags and
// markdown markers stripped, suffixed with "...".
func Excerpt(content string) string {
	s := htmlTagPattern.ReplaceAllString(content, "")
	s = markdownPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

const wordsPerMinute = 200

// ReadTime estimates reading minutes: words divided by 200, rounded up, at
// least 1 for non-empty content.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// Authors is the byline pool.
var Authors = []string{
	"Carlos Martinez",
	"Ana García",
	"Miguel Santos",
	"Laura Pérez",
	"David López",
	"Sofia Rodriguez",
	"Pablo Fernandez",
}

// Assembler produces the randomized article fields.
type Assembler struct {
	rng *rand.Rand
	now func() time.Time
}

func New() *Assembler {
	return &Assembler{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewSeeded returns an Assembler with a fixed random source and clock.
func NewSeeded(seed int64, now func() time.Time) *Assembler {
	return &Assembler{rng: rand.New(rand.NewSource(seed)), now: now}
}

// Rating returns a uniform rating in [4.0, 5.0] with one decimal.
func (a *Assembler) Rating() float64 {
	return math.Round((4.0+a.rng.Float64())*10) / 10
}

// Author picks a random byline from the pool.
func (a *Assembler) Author() string {
	return Authors[a.rng.Intn(len(Authors))]
}

// Featured marks roughly 30% of articles as featured.
func (a *Assembler) Featured() bool {
	return a.rng.Float64() > 0.7
}

// PublishDate formats today as a Spanish long date ("2 de enero de 2025").
func (a *Assembler) PublishDate() string {
	return SpanishDate(a.now())
}

// PublishDateTime is PublishDate with the time of day, used by the breaking
// news ticker ("2 de enero de 2025, 09:05").
func (a *Assembler) PublishDateTime() string {
	t := a.now()
	return SpanishDate(t) + ", " + t.Format("15:04")
}

// SpanishDate formats t as a Spanish long date.
func SpanishDate(t time.Time) string {
	return strings.Join([]string{
		strings.TrimLeft(t.Format("2"), "0"),
		"de",
		topics.SpanishMonth(t),
		"de",
		t.Format("2006"),
	}, " ")
}
