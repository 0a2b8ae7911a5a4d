// /internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken      string   `env:"DISCORD_TOKEN,required"`
	InitSlashCommands bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	GuildBlacklist    []string `env:"GUILD_BLACKLIST" envSeparator:","`
	DevGuildIDs       []string `env:"DEV_GUILD_IDS" envSeparator:","`
	Development       bool     `env:"DEVELOPMENT" envDefault:"false"`
	DeveloperID       string   `env:"DEVELOPER_ID"`

	DatabaseURL   string `env:"DATABASE_URL" envDefault:"akane.db"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"pt-BR"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	PromptTimeout       time.Duration `env:"PROMPT_TIMEOUT" envDefault:"30s"`
	WizardAnswerTimeout time.Duration `env:"WIZARD_ANSWER_TIMEOUT" envDefault:"2m"`
	DMRetryTimeout      time.Duration `env:"DM_RETRY_TIMEOUT" envDefault:"20s"`
	UnbanSchedule       string        `env:"UNBAN_SCHEDULE" envDefault:"@every 1m"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already carry everything
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DiscordToken) == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.PromptTimeout <= 0 {
		return fmt.Errorf("PROMPT_TIMEOUT must be positive")
	}
	if c.WizardAnswerTimeout <= 0 {
		return fmt.Errorf("WIZARD_ANSWER_TIMEOUT must be positive")
	}
	if c.DMRetryTimeout <= 0 {
		return fmt.Errorf("DM_RETRY_TIMEOUT must be positive")
	}
	return nil
}

// IsPostgres reports whether DatabaseURL points at a Postgres server.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}
