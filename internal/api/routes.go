// 包 api：集中注册 HTTP API 路由以解耦主入口，便于后续扩展与替换
package api

import (
	"net/http"
	"time"

	"adcompass/internal/metrics"
	"adcompass/internal/registry"
	"adcompass/internal/store"

	"github.com/redis/go-redis/v9"
)

// Locator：IP → 地域路径解析（由 geoloc.Resolver 实现）
type Locator interface {
	Location(ip string) (string, bool)
}

// Options：路由依赖
// 约束：Registry 必填；Store / Redis / Geo 可为 nil，表示对应能力未启用
type Options struct {
	Registry       *registry.Registry
	Store          *store.Store
	Redis          *redis.Client
	Geo            Locator
	CacheTTL       time.Duration
	MaxUploadBytes int64
}

type server struct {
	reg       *registry.Registry
	st        *store.Store
	geo       Locator
	cache     *searchCache
	maxUpload int64
}

// BuildRoutes：构建并返回 API 路由，独立 ServeMux 便于在主入口挂载到 API_BASE 前缀
func BuildRoutes(o Options) *http.ServeMux {
	s := &server{
		reg:       o.Registry,
		st:        o.Store,
		geo:       o.Geo,
		cache:     &searchCache{rc: o.Redis, ttl: o.CacheTTL},
		maxUpload: o.MaxUploadBytes,
	}
	metrics.TrackPlatforms(s.reg.Len)
	if s.maxUpload <= 0 {
		s.maxUpload = 10 << 20
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /platforms/upload", s.handleUpload)
	mux.HandleFunc("POST /platforms/search", s.handleSearchJSON)
	mux.HandleFunc("GET /platforms/search", s.handleSearchQuery)
	mux.HandleFunc("GET /platforms/all", s.handleAll)
	mux.HandleFunc("DELETE /platforms/clear", s.handleClear)
	mux.HandleFunc("GET /platforms/loads", s.handleLoads)
	mux.HandleFunc("GET /stats", s.handleStats)
	return mux
}
