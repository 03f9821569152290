package config

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPoolSize     = 10
	defaultRedisMinIdleConns = 2
	defaultRedisDialTimeout  = time.Second * 5
	defaultRedisReadTimeout  = time.Second * 3
	defaultRedisWriteTimeout = time.Second * 3
)

// RedisOptions converts the section to client options.
func (r RedisConfig) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:         r.Addr,
		Password:     r.Password,
		DB:           r.DB,
		PoolSize:     defaultRedisPoolSize,
		MinIdleConns: defaultRedisMinIdleConns,
		DialTimeout:  defaultRedisDialTimeout,
		ReadTimeout:  defaultRedisReadTimeout,
		WriteTimeout: defaultRedisWriteTimeout,
	}
}
