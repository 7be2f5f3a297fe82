// 包 utils：外部依赖连接工具（PostgreSQL / Redis / TLS 证书），统一环境变量读取
package utils

import (
	"database/sql"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/lib/pq"
)

// BuildPostgresDSNFromEnv：按 PG_* 环境变量拼接连接串
// 背景：数据库只保存上传历史与查询统计，默认库名 adcompass；密码中可能含 @ : / 等字符，统一经 url.UserPassword 转义
// 约束：未设置的项使用本地开发默认值（localhost:5432，用户 postgres，sslmode=disable）
func BuildPostgresDSNFromEnv() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     envDefault("PG_HOST", "localhost") + ":" + envDefault("PG_PORT", "5432"),
		Path:     "/" + envDefault("PG_DB", "adcompass"),
		RawQuery: "sslmode=" + url.QueryEscape(envDefault("PG_SSLMODE", "disable")),
	}
	user := envDefault("PG_USER", "postgres")
	if pass := os.Getenv("PG_PASSWORD"); pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// OpenPostgresFromEnv：打开连接池
// 背景：写入量很小（每次上传一条、每次查询两条更新），连接池上限默认低于 IP 查询类服务；
// 连接最长存活 PG_CONN_MAX_LIFETIME_SECONDS（默认 300s），便于数据库侧切主后自然重连
// 约束：sql.Open 不会真正建连，连通性由调用方 Ping 检查
func OpenPostgresFromEnv() (*sql.DB, error) {
	db, err := sql.Open("postgres", BuildPostgresDSNFromEnv())
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(envPositive("PG_MAX_OPEN_CONNS", 20))
	db.SetMaxIdleConns(envPositive("PG_MAX_IDLE_CONNS", 10))
	db.SetConnMaxLifetime(time.Duration(envPositive("PG_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second)
	return db, nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envPositive(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
