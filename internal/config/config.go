package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       App       `mapstructure:"app"`
	AI        AI        `mapstructure:"ai"`
	Firestore Firestore `mapstructure:"firestore"`
	Photos    Photos    `mapstructure:"photos"`
	PlayStore PlayStore `mapstructure:"playstore"`
	Email     Email     `mapstructure:"email"`
	Pipeline  Pipeline  `mapstructure:"pipeline"`
	Server    Server    `mapstructure:"server"`
}

// App holds general application configuration.
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	ConfigFile string `mapstructure:"config_file"`
}

// AI holds text-generation configuration.
type AI struct {
	Provider    string            `mapstructure:"provider"` // "gemini" or "huggingface"
	Gemini      GeminiConfig      `mapstructure:"gemini"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
	TopP        float32 `mapstructure:"top_p"`
	TopK        float32 `mapstructure:"top_k"`
}

// HuggingFaceConfig holds the HuggingFace inference fallback configuration.
type HuggingFaceConfig struct {
	Token     string `mapstructure:"token"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	Timeout   string `mapstructure:"timeout"`
	MaxTokens int32  `mapstructure:"max_tokens"`
}

// Firestore holds document-store configuration.
type Firestore struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// Photos holds stock-photo provider configuration.
type Photos struct {
	DefaultProvider string              `mapstructure:"default_provider"`
	PerPage         int                 `mapstructure:"per_page"`
	Orientation     string              `mapstructure:"orientation"`
	Providers       PhotoProviderConfig `mapstructure:"providers"`
}

// PhotoProviderConfig holds per-provider credentials.
type PhotoProviderConfig struct {
	Unsplash UnsplashConfig `mapstructure:"unsplash"`
	Pexels   PexelsConfig   `mapstructure:"pexels"`
}

// UnsplashConfig holds Unsplash API configuration.
type UnsplashConfig struct {
	AccessKey string `mapstructure:"access_key"`
}

// PexelsConfig holds Pexels API configuration.
type PexelsConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// PlayStore holds Play Store scraping configuration.
type PlayStore struct {
	Language  string `mapstructure:"language"`
	Country   string `mapstructure:"country"`
	RateLimit string `mapstructure:"rate_limit"`
	Timeout   string `mapstructure:"timeout"`
}

// Email holds transactional email (Brevo) configuration.
type Email struct {
	BrevoAPIKey   string `mapstructure:"brevo_api_key"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	WelcomeListID int    `mapstructure:"welcome_list_id"`
	DailyQuota    int    `mapstructure:"daily_quota"`
	Timeout       string `mapstructure:"timeout"`
}

// Pipeline holds generation-pipeline configuration.
type Pipeline struct {
	ForceType     string `mapstructure:"force_type"`
	ImageDelay    string `mapstructure:"image_delay"`
	WordTargetMin int    `mapstructure:"word_target_min"`
	WordTargetMax int    `mapstructure:"word_target_max"`
}

// Server holds the admin/content HTTP API configuration.
type Server struct {
	Addr     string `mapstructure:"addr"`
	AdminKey string `mapstructure:"admin_key"`
}

var globalConfig *Config

// Load reads configuration from the optional config file, the environment,
// and built-in defaults, in that order of increasing precedence for env.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// A .env file is a convenience for local runs; CI provides real env vars.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".gamepress")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.0-flash-exp")
	viper.SetDefault("ai.gemini.timeout", "60s")
	viper.SetDefault("ai.gemini.max_tokens", 8192)
	viper.SetDefault("ai.gemini.temperature", 0.7)
	viper.SetDefault("ai.gemini.top_p", 0.95)
	viper.SetDefault("ai.gemini.top_k", 64)
	viper.SetDefault("ai.huggingface.model", "Qwen/Qwen2.5-7B-Instruct")
	viper.SetDefault("ai.huggingface.base_url", "https://api-inference.huggingface.co")
	viper.SetDefault("ai.huggingface.timeout", "120s")
	viper.SetDefault("ai.huggingface.max_tokens", 4000)

	viper.SetDefault("photos.default_provider", "unsplash")
	viper.SetDefault("photos.per_page", 30)
	viper.SetDefault("photos.orientation", "landscape")

	viper.SetDefault("playstore.language", "es")
	viper.SetDefault("playstore.country", "es")
	viper.SetDefault("playstore.rate_limit", "1s")
	viper.SetDefault("playstore.timeout", "30s")

	viper.SetDefault("email.from_address", "noticias@mobilegames.win")
	viper.SetDefault("email.from_name", "MobileGames.win")
	viper.SetDefault("email.daily_quota", 300)
	viper.SetDefault("email.timeout", "15s")

	viper.SetDefault("pipeline.image_delay", "1500ms")
	viper.SetDefault("pipeline.word_target_min", 1800)
	viper.SetDefault("pipeline.word_target_max", 2200)

	viper.SetDefault("server.addr", ":8080")
}

// bindEnvironmentVariables maps well-known env var names onto viper keys.
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
	bindEnvKeys("ai.huggingface.token", []string{
		"HUGGINGFACE_TOKEN",
		"HF_TOKEN",
	})
	if os.Getenv("USE_HUGGINGFACE") == "true" {
		viper.Set("ai.provider", "huggingface")
	}

	bindEnvKeys("firestore.project_id", []string{
		"FIREBASE_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
	})
	bindEnvKeys("firestore.credentials_file", []string{
		"GOOGLE_APPLICATION_CREDENTIALS",
		"FIREBASE_SERVICE_ACCOUNT_FILE",
	})

	bindEnvKeys("photos.providers.unsplash.access_key", []string{
		"UNSPLASH_ACCESS_KEY",
	})
	bindEnvKeys("photos.providers.pexels.api_key", []string{
		"PEXELS_API_KEY",
	})

	bindEnvKeys("email.brevo_api_key", []string{
		"BREVO_API_KEY",
		"SENDINBLUE_API_KEY",
	})

	bindEnvKeys("server.admin_key", []string{
		"ADMIN_API_KEY",
	})

	bindEnvKeys("pipeline.force_type", []string{
		"FORCE_ARTICLE_TYPE",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"GAMEPRESS_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key.
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig ensures the credentials nothing can proceed without.
func validateConfig(config *Config) error {
	var errors []string

	switch config.AI.Provider {
	case "gemini", "":
		if config.AI.Gemini.APIKey == "" {
			errors = append(errors, "Gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
		}
	case "huggingface":
		if config.AI.HuggingFace.Token == "" {
			errors = append(errors, "HuggingFace token is required when ai.provider=huggingface. Set HUGGINGFACE_TOKEN")
		}
	default:
		errors = append(errors, fmt.Sprintf("Unknown AI provider: %s. Supported: gemini, huggingface", config.AI.Provider))
	}

	if config.Firestore.ProjectID == "" {
		errors = append(errors, "Firestore project id is required. Set FIREBASE_PROJECT_ID or firestore.project_id")
	}

	durations := map[string]string{
		"ai.gemini.timeout":      config.AI.Gemini.Timeout,
		"ai.huggingface.timeout": config.AI.HuggingFace.Timeout,
		"playstore.rate_limit":   config.PlayStore.RateLimit,
		"playstore.timeout":      config.PlayStore.Timeout,
		"email.timeout":          config.Email.Timeout,
		"pipeline.image_delay":   config.Pipeline.ImageDelay,
	}
	for key, duration := range durations {
		if duration == "" {
			continue
		}
		if _, err := time.ParseDuration(duration); err != nil {
			errors = append(errors, fmt.Sprintf("invalid duration for %s: %s", key, duration))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Convenience getters for commonly used configuration values.
func GetApp() App             { return Get().App }
func GetAI() AI               { return Get().AI }
func GetFirestore() Firestore { return Get().Firestore }
func GetPhotos() Photos       { return Get().Photos }
func GetPlayStore() PlayStore { return Get().PlayStore }
func GetEmail() Email         { return Get().Email }
func GetPipeline() Pipeline   { return Get().Pipeline }
func GetServer() Server       { return Get().Server }

func GetGeminiAPIKey() string { return Get().AI.Gemini.APIKey }
func GetAIProvider() string   { return Get().AI.Provider }
func IsDebugMode() bool       { return Get().App.Debug }

// ImageDelay returns the parsed delay between placeholder resolutions.
func ImageDelay() time.Duration {
	d, err := time.ParseDuration(Get().Pipeline.ImageDelay)
	if err != nil {
		return 1500 * time.Millisecond
	}
	return d
}

// Reset clears the global configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viper.Reset()
}
