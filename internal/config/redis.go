package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	ReportCacheTTL time.Duration
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
		if err != nil {
			db = 0
		}
		ttl, err := time.ParseDuration(getEnv("REPORT_CACHE_TTL", "1m"))
		if err != nil || ttl <= 0 {
			ttl = time.Minute
		}
		redisConfig = &RedisConfig{
			Addr:           os.Getenv("REDIS_ADDR"),
			Password:       os.Getenv("REDIS_PASSWORD"),
			DB:             db,
			ReportCacheTTL: ttl,
		}
	})
	return redisConfig
}

func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}
