package main

import "time"

// appConfig wires the council daemon from the environment.
type appConfig struct {
	// Provider selects which model API backs the personas. The lorem
	// provider needs no credentials and is the development default.
	Provider string `env:"COUNCIL_PROVIDER" envDefault:"lorem"`

	// Model is the default model for every persona. Requests may override it.
	Model string `env:"COUNCIL_MODEL" envDefault:"gpt-4o-mini"`

	// FetchTimeout bounds a single token fetch from any persona.
	FetchTimeout time.Duration `env:"COUNCIL_FETCH_TIMEOUT" envDefault:"30s"`

	// Provider credentials, each required only when its provider is selected.
	OpenAIAPIKey    string `env:"OPENAI_API_KEY" envDefault:""`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY" envDefault:""`
	GeminiAPIKey    string `env:"GEMINI_API_KEY" envDefault:""`

	// Billing selects where usage records go: memory, redis, or postgres.
	Billing     string        `env:"BILLING_BACKEND" envDefault:"memory"`
	RedisURL    string        `env:"BILLING_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	UsageTTL    time.Duration `env:"BILLING_USAGE_TTL" envDefault:"0"`
	PostgresDSN string        `env:"BILLING_POSTGRES_DSN" envDefault:""`
}

// logConfig controls log output.
type logConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}
