// 包 config：集中读取环境变量并给出默认值，主入口与各子模块共享同一份配置
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config：服务运行配置
// 背景：沿用环境变量 + .env 的配置方式，避免引入额外配置文件格式；未设置的项使用默认值
type Config struct {
	Addr    string
	APIBase string
	UIDir   string

	DBEnable    bool
	RedisEnable bool

	SearchCacheTTL time.Duration
	GeoIPPath      string

	RateLimitEnabled bool
	RateLimitQPS     int
	RateLimitBurst   int

	MaxUploadBytes int64
	SeedFile       string

	TLSEnable   bool
	TLSCertPath string
	TLSKeyPath  string
}

// Load：从环境变量读取配置
// 约束：数值解析失败或非正数时回退默认值，不中断启动
func Load() Config {
	c := Config{
		Addr:             envOr("ADDR", ":8080"),
		APIBase:          normalizeAPIBase(os.Getenv("API_BASE")),
		UIDir:            envOr("UI_DIST", filepath.Join("ui", "dist")),
		DBEnable:         os.Getenv("DB_ENABLE") == "true",
		RedisEnable:      os.Getenv("REDIS_ENABLE") == "true",
		SearchCacheTTL:   time.Duration(envInt("SEARCH_CACHE_TTL_SECONDS", 300)) * time.Second,
		GeoIPPath:        os.Getenv("GEOIP_DB_PATH"),
		RateLimitEnabled: os.Getenv("RATE_LIMIT_ENABLED") == "true",
		RateLimitQPS:     envInt("RATE_LIMIT_QPS", 200),
		MaxUploadBytes:   int64(envInt("MAX_UPLOAD_BYTES", 10<<20)),
		SeedFile:         os.Getenv("SEED_FILE"),
		TLSEnable:        os.Getenv("TLS_ENABLE") == "true",
		TLSCertPath:      envOr("TLS_CERT_PATH", filepath.Join("data", "certs", "server.crt")),
		TLSKeyPath:       envOr("TLS_KEY_PATH", filepath.Join("data", "certs", "server.key")),
	}
	c.RateLimitBurst = envInt("RATE_LIMIT_BURST", c.RateLimitQPS)
	return c
}

// normalizeAPIBase：统一为 `/xxx` 形式；未设置时为 /api，设置为根路径（如 "/"）时为空串，表示 API 挂在根上
func normalizeAPIBase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "/api"
	}
	if t := strings.Trim(s, "/"); t != "" {
		return "/" + t
	}
	return ""
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
