package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Client   ClientConfig   `yaml:"client"`
	Feed     FeedConfig     `yaml:"feed"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds access-token settings. An empty secret disables
// authenticated identity; all callers are treated as anonymous.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"      env-default:"askfeed"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// Enabled reports whether authenticated identity is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// ClientConfig holds the durable client-side storage settings for the
// session identity and vote ledger.
type ClientConfig struct {
	// Backend selects the storage: "file" or "redis".
	Backend  string `yaml:"backend"   env:"CLIENT_BACKEND"   env-default:"file"`
	FilePath string `yaml:"file_path" env:"CLIENT_FILE_PATH" env-default:"./askfeed-client.json"`
	RedisURL string `yaml:"redis_url" env:"CLIENT_REDIS_URL" env-default:"redis://localhost:6379/0"`
}

// FeedConfig holds live-view settings.
type FeedConfig struct {
	// RefetchTimeout bounds the authoritative row and vote-count reads
	// triggered by change notifications.
	RefetchTimeout time.Duration `yaml:"refetch_timeout" env:"FEED_REFETCH_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
