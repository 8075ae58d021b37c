package redis

import (
	"context"
	"net"
	"saleema/config"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = time.Second
)

// New connects to the primary redis. Redis only backs the package cache and
// the rate limiter, and both fail open, so an unreachable server is logged
// and the client is returned anyway to reconnect on its own.
func New(cfg *config.Config) *goRedis.Client {
	primary := cfg.Cache.Redis.Primary
	addr := net.JoinHostPort(primary.Host, primary.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:         addr,
		Password:     primary.Password,
		DB:           primary.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unreachable, cache and rate limiting degraded")

		return client
	}

	log.Info().Str("addr", addr).Int("db", primary.DB).Msg("connected to redis")

	return client
}
