// 包 utils：Redis 连接工具，统一环境变量读取、可选 DB 选择与超时配置
package utils

import (
	"adcompass/internal/logger"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisOptionsFromEnv：从环境变量构造客户端参数
// 背景：Redis 只承担查询结果缓存，慢或不可用时应尽快失败并回退到内存注册表，而不是拖慢查询；
// 因此连接/读写超时默认较短（REDIS_TIMEOUT_MS，默认 200ms），且只重试一次。
// 约束：REDIS_DB 解析失败或为负数时回退到 0；REDIS_TIMEOUT_MS 非正数时使用默认值
func redisOptionsFromEnv() *redis.Options {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			db = n
		}
	}
	timeout := 200 * time.Millisecond
	if v := os.Getenv("REDIS_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Millisecond
		}
	}
	return &redis.Options{
		Addr:         host + ":" + port,
		Password:     os.Getenv("REDIS_PASS"),
		DB:           db,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   1,
	}
}

// OpenRedisFromEnv：按环境变量打开 Redis 客户端
// 约束：不在此处 Ping，连通性由主入口检查并记录；返回的客户端需由调用方 Close
func OpenRedisFromEnv() *redis.Client {
	opts := redisOptionsFromEnv()
	logger.L().Debug("redis_env", "addr", opts.Addr, "db", opts.DB, "timeout_ms", opts.ReadTimeout.Milliseconds())
	return redis.NewClient(opts)
}
