package config

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient dials the Redis instance named by the config and
// verifies it with a short ping. Redis backs the session store and the
// API rate limiter; when the ping fails the function returns nil and
// the caller disables both instead of failing startup.
func NewRedisClient(cfg Config) *redis.Client {
	var tlsConf *tls.Config
	if cfg.RedisTLS {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
