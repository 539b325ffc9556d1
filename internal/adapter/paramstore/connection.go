package paramstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/internal/config"
)

// ConnectRedis returns nil, nil when no Redis URL is configured.
func ConnectRedis(ctx context.Context, conf *config.Config) (*redis.Client, error) {
	if conf.RedisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(conf.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}
