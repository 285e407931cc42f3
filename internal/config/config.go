package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakPasswords = []string{
	"change-me", "secret", "admin", "password", "admin123",
}

type Config struct {
	Port              int    `env:"PORT" envDefault:"8080"`
	DataDir           string `env:"DATA_DIR" envDefault:"data"`
	StaticDir         string `env:"STATIC_DIR" envDefault:"static/site"`
	PublicBaseURL     string `env:"PUBLIC_BASE_URL" envDefault:""`
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	SessionSecret     string `env:"SESSION_SECRET" envDefault:"dev-session-secret"`
	SessionTTLHours   int    `env:"SESSION_TTL_HOURS" envDefault:"24"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	RedisURL     string `env:"REDIS_URL" envDefault:""`

	MessagesBackend string `env:"MESSAGES_BACKEND" envDefault:"file"`
	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`

	MediaBackend string `env:"MEDIA_BACKEND" envDefault:"disk"`
	MediaDir     string `env:"MEDIA_DIR" envDefault:"public/images/media"`
	S3Bucket     string `env:"S3_BUCKET" envDefault:""`
	S3Region     string `env:"S3_REGION" envDefault:""`
	S3Endpoint   string `env:"S3_ENDPOINT" envDefault:""`
	S3AccessKey  string `env:"S3_ACCESS_KEY" envDefault:""`
	S3SecretKey  string `env:"S3_SECRET_KEY" envDefault:""`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) Validate(isProduction bool) error {
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("either ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}
	if c.AdminPasswordHash != "" {
		if !strings.HasPrefix(c.AdminPasswordHash, "$2a$") &&
			!strings.HasPrefix(c.AdminPasswordHash, "$2b$") &&
			!strings.HasPrefix(c.AdminPasswordHash, "$2y$") {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be a bcrypt hash (generate with: go run scripts/hash-password.go <password>)")
		}
	}

	switch c.StoreBackend {
	case "file", "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("STORE_BACKEND=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (expected file, memory, or redis)", c.StoreBackend)
	}

	switch c.MessagesBackend {
	case "file":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("MESSAGES_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown MESSAGES_BACKEND %q (expected file or postgres)", c.MessagesBackend)
	}

	switch c.MediaBackend {
	case "disk":
	case "s3":
		if c.S3Bucket == "" || c.S3Region == "" {
			return fmt.Errorf("MEDIA_BACKEND=s3 requires S3_BUCKET and S3_REGION")
		}
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q (expected disk or s3)", c.MediaBackend)
	}

	if isProduction {
		if len(c.SessionSecret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 characters in production (generate with: openssl rand -base64 32)")
		}
		if c.AdminPasswordHash == "" {
			log.Warn().Msg("ADMIN_PASSWORD is stored in plain text: set ADMIN_PASSWORD_HASH in production")
		}
		for _, weak := range knownWeakPasswords {
			if c.AdminPassword == weak {
				log.Warn().Msg("ADMIN_PASSWORD is a known weak default; change it in production")
			}
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
