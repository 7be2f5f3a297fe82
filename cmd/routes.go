package main

import (
	"net/http"

	"adcompass/internal/config"
	"adcompass/internal/logger"
	"adcompass/internal/metrics"
	"adcompass/internal/version"
)

// rootMux：组装进程级路由（API、指标、健康检查、前端静态资源）
// 背景：API_BASE 为空表示 API 直接挂在根路径，此时不再提供前端静态资源，避免与 API 争用 "/"。
// 约束：/healthz 与 /config.js 始终可用；指标路径为 {API_BASE}/metrics。
func rootMux(cfg config.Config, apiMux http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	// NOTE: 向前端暴露 API 基础路径，避免硬编码
	mux.HandleFunc("/config.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/javascript; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_, _ = w.Write([]byte("window.__API_BASE__='" + cfg.APIBase + "'\n"))
		_, _ = w.Write([]byte("window.__COMMIT_SHA__='" + version.Commit + "'\n"))
	})
	mux.Handle(cfg.APIBase+"/metrics", metrics.Handler())
	if cfg.APIBase == "" {
		logger.L().Info("ui_disabled", "reason", "api_mounted_at_root")
		mux.Handle("/", apiMux)
		return mux
	}
	mux.Handle(cfg.APIBase+"/", http.StripPrefix(cfg.APIBase, apiMux))
	mux.Handle("/", http.FileServer(http.Dir(cfg.UIDir)))
	return mux
}
