package core

import "time"

// ArticleType identifies the editorial shape of a generated article.
type ArticleType string

const (
	TypeTop5       ArticleType = "top5"
	TypeAnalysis   ArticleType = "analysis"
	TypeComparison ArticleType = "comparison"
	TypeGuide      ArticleType = "guide"
	TypeBreaking   ArticleType = "breaking"
)

// Article statuses as stored in the articles collection.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Article is a published (or draft) long-form piece. CreatedAt is assigned
// by the store on write and is the only reliable sort key; PublishDate is a
// display string and must never be parsed for ordering.
type Article struct {
	ID          string    `firestore:"id" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Content     string    `firestore:"content" json:"content"`
	Excerpt     string    `firestore:"excerpt" json:"excerpt"`
	Image       string    `firestore:"image" json:"image"`
	Category    string    `firestore:"category" json:"category"`
	Author      string    `firestore:"author" json:"author"`
	PublishDate string    `firestore:"publishDate" json:"publishDate"`
	ReadTime    int       `firestore:"readTime" json:"readTime"`
	Rating      float64   `firestore:"rating" json:"rating"`
	Slug        string    `firestore:"slug" json:"slug"`
	Featured    bool      `firestore:"featured" json:"featured"`
	Type        string    `firestore:"type" json:"type"`
	Status      string    `firestore:"status" json:"status"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// BreakingNews is a short ticker item. At most one document should be
// active at a time; the store enforces this best-effort with a batched
// deactivate-then-activate write, not a transaction.
type BreakingNews struct {
	ID          string    `firestore:"id" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Content     string    `firestore:"content" json:"content"`
	Type        string    `firestore:"type" json:"type"`
	PublishDate string    `firestore:"publishDate" json:"publishDate"`
	Active      bool      `firestore:"active" json:"active"`
	Read        bool      `firestore:"read" json:"read"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Subscriber statuses.
const (
	SubscriberActive       = "active"
	SubscriberBlocked      = "blocked"
	SubscriberUnsubscribed = "unsubscribed"
)

// Subscriber is a newsletter recipient. Email is the dedup key and is
// always stored lower-cased.
type Subscriber struct {
	ID           string    `firestore:"-" json:"id"`
	Email        string    `firestore:"email" json:"email"`
	Name         string    `firestore:"name" json:"name"`
	Status       string    `firestore:"status" json:"status"`
	Source       string    `firestore:"source" json:"source"`
	Confirmed    bool      `firestore:"confirmed" json:"confirmed"`
	Groups       []string  `firestore:"groups" json:"groups"`
	SubscribedAt time.Time `firestore:"subscribedAt,serverTimestamp" json:"subscribedAt"`
}

// SubscriberGroup is a segmentation bucket. Default groups cannot be
// deleted from the admin surface.
type SubscriberGroup struct {
	ID          string    `firestore:"-" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Description string    `firestore:"description" json:"description"`
	Color       string    `firestore:"color" json:"color"`
	IsDefault   bool      `firestore:"isDefault" json:"isDefault"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// PromptConfig is a per-cadence prompt override stored in ai_config.
type PromptConfig struct {
	ID                 string    `firestore:"id" json:"id"`
	Name               string    `firestore:"name" json:"name"`
	Type               string    `firestore:"type" json:"type"`
	SystemPrompt       string    `firestore:"systemPrompt" json:"systemPrompt"`
	UserPromptTemplate string    `firestore:"userPromptTemplate" json:"userPromptTemplate"`
	Temperature        float32   `firestore:"temperature" json:"temperature"`
	MaxTokens          int32     `firestore:"maxTokens" json:"maxTokens"`
	Enabled            bool      `firestore:"enabled" json:"enabled"`
	UpdatedAt          time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// GeneralConfig is the singleton "general" document in ai_config.
type GeneralConfig struct {
	ID               string `firestore:"id" json:"id"`
	PreferredModel   string `firestore:"preferredModel" json:"preferredModel"`
	GeminiModel      string `firestore:"geminiModel" json:"geminiModel"`
	HuggingFaceModel string `firestore:"huggingfaceModel" json:"huggingfaceModel"`
	UnsplashEnabled  bool   `firestore:"unsplashEnabled" json:"unsplashEnabled"`
	DefaultCategory  string `firestore:"defaultCategory" json:"defaultCategory"`
	DefaultAuthor    string `firestore:"defaultAuthor" json:"defaultAuthor"`
}

// GameInfo is the Play Store metadata used to build inline game cards.
type GameInfo struct {
	Title       string    `json:"title"`
	AppID       string    `json:"app_id"`
	Icon        string    `json:"icon"`
	Screenshots []string  `json:"screenshots"`
	Score       float64   `json:"score"`
	Genre       string    `json:"genre"`
	Developer   string    `json:"developer"`
	Summary     string    `json:"summary"`
	Released    time.Time `json:"released"`
	Updated     time.Time `json:"updated"`
	Version     string    `json:"version"`
	MinInstalls int64     `json:"min_installs"`
	Price       string    `json:"price"`
	Free        bool      `json:"free"`
	URL         string    `json:"url"`
}

// Photo is a stock-photo search result with the resolution variants the
// providers expose.
type Photo struct {
	ID         string `json:"id"`
	Regular    string `json:"regular"`
	Small      string `json:"small"`
	Credit     string `json:"credit"`
	ProviderID string `json:"provider_id"`
}
