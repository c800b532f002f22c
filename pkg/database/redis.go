package database

import (
	"context"
	"fmt"
	"log"
	"proctor_guard_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis 建立 Redis 连接。未启用时返回 nil 客户端，
// 在线名单和大盘缓存会自动退化成直查数据库。
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Println("Redis disabled, presence tracking will be unavailable")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Redis connection established")
	return rdb, nil
}
