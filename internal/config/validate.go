package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.Client.Backend {
	case "file":
		if c.Client.FilePath == "" {
			return fmt.Errorf("client.file_path is required for the file backend")
		}
	case "redis":
		if c.Client.RedisURL == "" {
			return fmt.Errorf("client.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("client.backend must be \"file\" or \"redis\" (got %q)", c.Client.Backend)
	}

	if c.Feed.RefetchTimeout <= 0 {
		return fmt.Errorf("feed.refetch_timeout must be > 0 (got %v)", c.Feed.RefetchTimeout)
	}

	return nil
}
