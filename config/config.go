package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	SQLite SQLiteConfig
	Redis  RedisConfig
	Camera CameraConfig
}

type ServerConfig struct {
	Env          string        `split_words:"true" default:"development"`
	HTTPAddr     string        `split_words:"true" default:":8080"`
	GRPCAddr     string        `split_words:"true" default:":9090"`
	ReadTimeout  time.Duration `split_words:"true" default:"15s"`
	WriteTimeout time.Duration `split_words:"true" default:"15s"`
	RateLimit    int           `split_words:"true" default:"120"` // requests per minute per client
}

type LoggerConfig struct {
	Level             string `split_words:"true" default:"debug"`
	Encoding          string `split_words:"true" default:"console"`
	DisableCaller     bool   `split_words:"true" default:"false"`
	DisableStacktrace bool   `split_words:"true" default:"true"`
}

type SQLiteConfig struct {
	Path        string        `split_words:"true" default:"fridge.db"`
	BusyTimeout time.Duration `split_words:"true" default:"5s"`
}

// RedisConfig is optional. An empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr     string        `split_words:"true"`
	Password string        `split_words:"true"`
	DB       int           `split_words:"true" default:"0"`
	TTL      time.Duration `split_words:"true" default:"24h"`
}

type CameraConfig struct {
	Root         string        `split_words:"true" default:"frames"`
	PollInterval time.Duration `split_words:"true" default:"200ms"`
}

// LoadEnv parses the process environment. Nested structs are prefixed with their
// field name, so Server.HTTPAddr reads SERVER_HTTP_ADDR and SQLite.Path reads SQLITE_PATH.
// Fields carry split_words rather than envconfig tags: a tag would also be looked up
// unprefixed, and SQLite.Path would then pick up $PATH.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.Server.Env == "development"
}
