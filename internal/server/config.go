package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port        int           `env:"PORT" envDefault:"3001"`
	FrontendURL string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	ArticlePath string        `env:"ARTICLE_PATH" envDefault:"article.md"`
	LogPath     string        `env:"AGENT_LOG_PATH" envDefault:"public/agent-log.json"`
	Watch       bool          `env:"WATCH" envDefault:"false"`
	Debounce    time.Duration `env:"WATCH_DEBOUNCE" envDefault:"200ms"`
}

// ParseEnv loads Config from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
