package config

import "time"

// AIConfig holds the Gemini settings
type AIConfig struct {
	APIKey  string        `yaml:"-" json:"-"` // Never serialize
	BaseURL string        `yaml:"base_url" json:"baseUrl"`
	Model   string        `yaml:"model" json:"model"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	Locale  string        `yaml:"locale" json:"locale"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Model:   "gemini-2.5-flash",
		Timeout: 60 * time.Second,
		Locale:  "ko",
	}
}

// IsEnabled returns true if the AI API is configured
func (c AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

func (c *AIConfig) applyEnv() {
	c.APIKey = getEnvOrDefault("GEMINI_API_KEY", c.APIKey)
	c.BaseURL = getEnvOrDefault("GEMINI_BASE_URL", c.BaseURL)
	c.Model = getEnvOrDefault("GEMINI_MODEL", c.Model)
	c.Timeout = getDurationOrDefault("GEMINI_TIMEOUT", c.Timeout)
	c.Locale = getEnvOrDefault("REPORT_STYLE", c.Locale)
}
