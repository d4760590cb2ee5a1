package config

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// ClientOptions builds go-redis options for the seed journal. Zero timeouts
// fall back to the package defaults.
func (r *RedisConfig) ClientOptions() *redis.Options {
	dialTimeout := r.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	opts := &redis.Options{
		Addr:            r.GetAddr(),
		Password:        r.Password,
		DB:              r.Database,
		MaxRetries:      r.MaxRetries,
		PoolSize:        r.PoolSize,
		DialTimeout:     dialTimeout,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		ConnMaxIdleTime: r.ConnMaxIdleTime,
	}

	if r.EnableTLS {
		opts.TLSConfig = &tls.Config{
			ServerName: r.Host,
			MinVersion: tls.VersionTLS12,
		}
	}
	return opts
}

// NewRedisClient creates the client used by the seed journal
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(cfg.ClientOptions())
}
