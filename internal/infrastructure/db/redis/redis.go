package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

var (
	// ErrNotConfigured means neither REDIS_URL nor REDIS_ADDR is set.
	ErrNotConfigured = errors.New("redis: not configured")
	// ErrInvalidURL hides the URL itself, which may carry a password.
	ErrInvalidURL = errors.New("redis: invalid url")
)

// Config locates the Redis instance behind the login throttle. URL takes
// precedence over Addr, Password and DB.
type Config struct {
	URL      string
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Enabled reports whether a Redis instance has been configured at all.
func (c Config) Enabled() bool {
	return c.URL != "" || c.Addr != ""
}

func (c Config) options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, ErrInvalidURL
		}
		return opts, nil
	}
	if c.Addr == "" {
		return nil, ErrNotConfigured
	}
	return &redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}, nil
}

// Connect builds a client from cfg and pings it, giving up after
// cfg.Timeout (5s by default).
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	opts.DialTimeout = timeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
