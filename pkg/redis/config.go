package redis

import "time"

// Config is loaded from the environment by pkg/config.
// An empty URL disables Redis; the store then lives only in memory.
type Config struct {
	URL            string        `env:"REDIS_URL"` // redis://:password@localhost:6379/0
	Key            string        `env:"REDIS_SNAPSHOT_KEY" envDefault:"workspacebilling:snapshot"`
	TTL            time.Duration `env:"REDIS_SNAPSHOT_TTL" envDefault:"0s"` // 0 keeps the snapshot forever
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
