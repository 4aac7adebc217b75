package config

import "os"

// ClaudeModels defines which Claude models to use for different tasks
type ClaudeModels struct {
	// Analysis is for per-answer SEL analysis (blocks the submit request)
	Analysis string `json:"analysis"`

	// Chat is for Socratic chat turns (needs to be fast)
	Chat string `json:"chat"`

	// Summary is for end-of-chat summary and recommendations
	Summary string `json:"summary"`

	// Scoring is for teacher-side student submission scoring
	Scoring string `json:"scoring"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Version   string       `json:"version"`
	Models    ClaudeModels `json:"models"`
	MaxTokens int          `json:"maxTokens"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		BaseURL: getEnvOrDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com/v1/messages"),
		Version: "2023-06-01",
		Models: ClaudeModels{
			Analysis: getEnvOrDefault("CLAUDE_MODEL_ANALYSIS", "claude-3-5-sonnet-20241022"),
			Chat:     getEnvOrDefault("CLAUDE_MODEL_CHAT", "claude-3-5-haiku-20241022"),
			Summary:  getEnvOrDefault("CLAUDE_MODEL_SUMMARY", "claude-3-5-sonnet-20241022"),
			Scoring:  getEnvOrDefault("CLAUDE_MODEL_SCORING", "claude-3-5-sonnet-20241022"),
		},
		MaxTokens: 1024,
		TimeoutMS: 20000, // 20 second default timeout
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
