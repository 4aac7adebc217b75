package config

import "os"

// DeepLConfig holds translation service configuration
type DeepLConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultDeepLConfig returns the default DeepL configuration
func DefaultDeepLConfig() *DeepLConfig {
	return &DeepLConfig{
		APIKey:    os.Getenv("DEEPL_API_KEY"),
		BaseURL:   getEnvOrDefault("DEEPL_BASE_URL", "https://api-free.deepl.com/v2/translate"),
		TimeoutMS: 15000,
	}
}

// IsEnabled returns true if the translation API is configured
func (c *DeepLConfig) IsEnabled() bool {
	return c.APIKey != ""
}
