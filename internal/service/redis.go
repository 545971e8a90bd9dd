package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/youtube-seguro/video-catalog-go/internal/config"
)

// ParseRedisAddr builds go-redis options from the configured address.
// Supports formats:
//   - redis://[:password@]host:port[/db]
//   - rediss://[:password@]host:port[/db] (TLS)
//   - host:port, with password and db taken from the config
func ParseRedisAddr(cfg config.RedisConfig) (*redis.Options, error) {
	if strings.Contains(cfg.Addr, "://") {
		opt, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		return opt, nil
	}

	return &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opt, err := ParseRedisAddr(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opt.Addr, err)
	}
	return client, nil
}
