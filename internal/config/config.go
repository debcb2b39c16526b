// Package config loads the server configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yatube-go/yatube/pkg/db"
	"github.com/yatube-go/yatube/pkg/logger"
	"github.com/yatube-go/yatube/pkg/mailer"
	"github.com/yatube-go/yatube/pkg/mailer/resend"
	"github.com/yatube-go/yatube/pkg/redis"
)

type Config struct {
	HTTP    HTTP
	Session Session
	Cache   Cache
	Jobs    Jobs
	DB      db.Config
	Redis   redis.Config
	Log     logger.Config
	Mailer  mailer.Config
	Resend  resend.Config
}

type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Metrics         bool          `env:"HTTP_METRICS" envDefault:"true"`
}

type Session struct {
	MaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
	Secure bool          `env:"SESSION_SECURE" envDefault:"false"`
	Domain string        `env:"SESSION_DOMAIN"`
}

type Cache struct {
	GroupTTL        time.Duration `env:"CACHE_GROUP_TTL" envDefault:"5m"`
	MemoryMaxGroups int           `env:"CACHE_MEMORY_MAX_GROUPS" envDefault:"1000"`
}

type Jobs struct {
	Workers int `env:"JOB_WORKERS" envDefault:"10"`
}

// Load reads .env files (missing ones are ignored) and parses the
// environment. Variables already set win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
