// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"adcompass/internal/api"
	"adcompass/internal/config"
	"adcompass/internal/geoloc"
	"adcompass/internal/logger"
	"adcompass/internal/middleware"
	"adcompass/internal/migrate"
	"adcompass/internal/registry"
	"adcompass/internal/store"
	"adcompass/internal/utils"
	"adcompass/internal/version"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	l := logger.Setup()
	cfg := config.Load()
	l.Info("starting", "version", version.Version, "commit", version.Commit)
	l.Debug("config_api_base", "base", cfg.APIBase)
	l.Debug("config_ui_dir", "dir", cfg.UIDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.New()
	if cfg.SeedFile != "" {
		// 背景：便于开发与演示环境启动即有数据；失败不阻断启动
		if b, err := os.ReadFile(cfg.SeedFile); err != nil {
			l.Error("seed_read_error", "path", cfg.SeedFile, "err", err)
		} else if n, err := reg.Load(string(b)); err != nil {
			l.Error("seed_load_error", "path", cfg.SeedFile, "err", err)
		} else {
			l.Info("seed_load_ok", "path", cfg.SeedFile, "count", n)
		}
	}

	var st *store.Store
	if cfg.DBEnable {
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			l.Error("db_open_error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			l.Error("db_ping_error", "err", err)
			os.Exit(1)
		}
		l.Info("db_ping_ok")
		if err := migrate.EnsureSchema(ctx, db); err != nil {
			l.Error("schema_error", "err", err)
			os.Exit(1)
		}
		st = store.AttachDB(db)
	} else {
		l.Info("db_disabled")
	}

	var rc *redis.Client
	if cfg.RedisEnable {
		rc = utils.OpenRedisFromEnv()
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			// 缓存不可用时查询直接走内存注册表
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	} else {
		l.Info("redis_disabled")
	}

	var geo api.Locator
	if cfg.GeoIPPath != "" {
		r, err := geoloc.Open(cfg.GeoIPPath)
		if err != nil {
			l.Error("geoip_open_error", "err", err)
		} else {
			defer r.Close()
			geo = r
		}
	}

	apiMux := api.BuildRoutes(api.Options{
		Registry:       reg,
		Store:          st,
		Redis:          rc,
		Geo:            geo,
		CacheTTL:       cfg.SearchCacheTTL,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	mux := rootMux(cfg, apiMux)

	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Recover(handler)
	if cfg.RateLimitEnabled {
		handler = middleware.RateLimit(cfg.RateLimitQPS, cfg.RateLimitBurst)(handler)
	}
	handler = middleware.RequestID(handler)
	srv := &http.Server{Addr: cfg.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error("shutdown_error", "err", err)
		}
	}()

	var err error
	if cfg.TLSEnable {
		if err := utils.EnsureSelfSignedCert(cfg.TLSCertPath, cfg.TLSKeyPath, "adcompass.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("listening_tls", "addr", cfg.Addr, "cert", cfg.TLSCertPath)
		err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
	} else {
		l.Info("listening", "addr", cfg.Addr)
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("serve_error", "err", err)
		os.Exit(1)
	}
	l.Info("shutdown_done")
}
