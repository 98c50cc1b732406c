package loopjet

import (
	"errors"
	"net/url"
)

// Config holds configuration for the Loopjet API client
type Config struct {
	// APIKey is the bearer token from the Loopjet account settings. It may
	// be empty at construction; every call fails fast until it is set.
	APIKey string
	// BaseURL is the API host
	BaseURL string
	// BasePath is the versioned API prefix
	BasePath string
	// TimeoutSeconds is the timeout for single-record calls
	TimeoutSeconds int
	// BatchTimeoutSeconds is the timeout for collection batch calls
	BatchTimeoutSeconds int
	// GenerateTimeoutSeconds is the timeout for AI generation calls; model
	// inference regularly runs for minutes.
	GenerateTimeoutSeconds int
	// DefaultLanguage is the two-letter language code for generated text
	DefaultLanguage string
}

const (
	// ProductionBaseURL is the production API endpoint
	ProductionBaseURL = "https://loopjet-api.fly.dev"
	// DefaultBasePath is the versioned API prefix
	DefaultBasePath = "/api/v1"

	defaultTimeoutSeconds         = 30
	defaultBatchTimeoutSeconds    = 60
	defaultGenerateTimeoutSeconds = 360
)

// Errors for Loopjet client configuration
var (
	ErrConfigInvalidBaseURL  = errors.New("loopjet: base URL is not a valid URL")
	ErrConfigInvalidLanguage = errors.New("loopjet: unsupported default language")
)

// SupportedLanguages lists the language codes the generation endpoint accepts
var SupportedLanguages = []string{"en", "de", "es", "fr", "it", "pt", "nl", "pl"}

// NewConfig creates a client configuration with production defaults
func NewConfig(apiKey string) *Config {
	return &Config{
		APIKey:                 apiKey,
		BaseURL:                ProductionBaseURL,
		BasePath:               DefaultBasePath,
		TimeoutSeconds:         defaultTimeoutSeconds,
		BatchTimeoutSeconds:    defaultBatchTimeoutSeconds,
		GenerateTimeoutSeconds: defaultGenerateTimeoutSeconds,
		DefaultLanguage:        "en",
	}
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = ProductionBaseURL
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ErrConfigInvalidBaseURL
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.BatchTimeoutSeconds <= 0 {
		c.BatchTimeoutSeconds = defaultBatchTimeoutSeconds
	}
	if c.GenerateTimeoutSeconds <= 0 {
		c.GenerateTimeoutSeconds = defaultGenerateTimeoutSeconds
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	if !isSupportedLanguage(c.DefaultLanguage) {
		return ErrConfigInvalidLanguage
	}
	return nil
}

func isSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}
