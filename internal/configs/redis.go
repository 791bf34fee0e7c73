package config

import (
	"fmt"

	"github.com/redis/rueidis"
)

const redisClientName = "helpify"

// RedisOptions builds the rueidis options for the rate-limit store. The
// store only runs scripts, so client-side caching stays off.
func RedisOptions(cfg Config) rueidis.ClientOption {
	return rueidis.ClientOption{
		InitAddress:  []string{cfg.RedisAddr},
		Password:     cfg.RedisPassword,
		SelectDB:     cfg.RedisDB,
		ClientName:   redisClientName,
		DisableCache: true,
	}
}

func NewRedisClient(cfg Config) (rueidis.Client, error) {
	client, err := rueidis.NewClient(RedisOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}
