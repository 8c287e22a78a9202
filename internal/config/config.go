package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                      int    `env:"PORT" envDefault:"8080"`
	DatabaseURL               string `env:"DATABASE_URL,required"`
	RedisURL                  string `env:"REDIS_URL,required"`
	LogLevel                  string `env:"LOG_LEVEL" envDefault:"info"`
	SessionTTLHours           int    `env:"SESSION_TTL_HOURS" envDefault:"168"`
	ReportHideThreshold       int    `env:"REPORT_HIDE_THRESHOLD" envDefault:"10"`
	DeletionGraceDays         int    `env:"DELETION_GRACE_DAYS" envDefault:"3"`
	EmailVerificationTTLHours int    `env:"EMAIL_VERIFICATION_TTL_HOURS" envDefault:"24"`
	DeletionCron              string `env:"DELETION_CRON" envDefault:"0 */15 * * * *"`
	CORSAllowedOrigins        string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	RateLimitPerMin           int    `env:"RATE_LIMIT_PER_MIN" envDefault:"120"`
	AutoMigrate               bool   `env:"AUTO_MIGRATE" envDefault:"false"`
	AppEnv                    string `env:"APP_ENV" envDefault:"development"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) DeletionGracePeriod() time.Duration {
	return time.Duration(c.DeletionGraceDays) * 24 * time.Hour
}

func (c *Config) EmailVerificationTTL() time.Duration {
	return time.Duration(c.EmailVerificationTTLHours) * time.Hour
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) Validate() error {
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	if c.ReportHideThreshold <= 0 {
		return fmt.Errorf("REPORT_HIDE_THRESHOLD must be positive")
	}
	if c.DeletionGraceDays < 0 {
		return fmt.Errorf("DELETION_GRACE_DAYS must not be negative")
	}
	if _, err := cron.NewParser(cronParseOptions).Parse(c.DeletionCron); err != nil {
		return fmt.Errorf("DELETION_CRON is not a valid cron spec: %w", err)
	}
	if strings.HasPrefix(c.RedisURL, "redis://") {
		log.Debug().Msg("REDIS_URL uses redis:// (not TLS)")
	}
	return nil
}

// cronParseOptions matches cron.WithSeconds, which the deletion scheduler uses.
const cronParseOptions = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
