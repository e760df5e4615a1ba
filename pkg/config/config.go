package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration, populated from the process
// environment. API keys default to empty; the components that need them
// report their absence per request rather than at startup.
type Config struct {
	OpenAIKey string `env:"OPENAI_API_KEY"`
	GeminiKey string `env:"GEMINI_API_KEY"`
	SarvamKey string `env:"SARVAM_API_KEY"`
	GoogleKey string `env:"GOOGLE_API_KEY"`

	SarvamURL          string `env:"SARVAM_API_URL"`
	GoogleTranslateURL string `env:"GOOGLE_TRANSLATE_URL"`

	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMModel    string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	ListenAddr    string        `env:"LISTEN_ADDR" envDefault:":8080"`
	QueueCapacity int           `env:"QUEUE_CAPACITY" envDefault:"512"`
	PollTimeout   time.Duration `env:"POLL_TIMEOUT" envDefault:"1s"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.QueueCapacity <= 0 {
		return nil, fmt.Errorf("QUEUE_CAPACITY must be positive, got %d", cfg.QueueCapacity)
	}
	return cfg, nil
}
