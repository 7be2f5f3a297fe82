package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adcompass_uploads_total",
		Help: "Total platform file uploads by result",
	}, []string{"result"})
	// platformsSource：当前注册表规模的读取函数，由 TrackPlatforms 设置
	platformsSource atomic.Pointer[func() int]
	// PlatformsLoaded：采集时直接读取注册表规模，并发上传时不会与实际快照不一致
	PlatformsLoaded = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "adcompass_platforms_loaded",
		Help: "Number of platforms in the current registry snapshot",
	}, func() float64 {
		if fn := platformsSource.Load(); fn != nil {
			return float64((*fn)())
		}
		return 0
	})
	SearchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adcompass_searches_total",
		Help: "Total location searches",
	})
	EmptySearchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adcompass_empty_searches_total",
		Help: "Total searches that matched no platform",
	})
	SearchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "adcompass_search_duration_ms",
		Help:    "Search duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adcompass_search_cache_hits_total",
		Help: "Total redis search cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adcompass_search_cache_misses_total",
		Help: "Total redis search cache misses",
	})
	GeoIPLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adcompass_geoip_lookups_total",
		Help: "GeoIP lookups by result",
	}, []string{"result"})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adcompass_rate_limited_total",
		Help: "Total requests rejected by the rate limiter",
	})
)

func init() {
	prometheus.MustRegister(UploadsTotal)
	prometheus.MustRegister(PlatformsLoaded)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(EmptySearchesTotal)
	prometheus.MustRegister(SearchDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(GeoIPLookupsTotal)
	prometheus.MustRegister(RateLimitedTotal)
}

// TrackPlatforms：指定 adcompass_platforms_loaded 的数据来源（通常为 registry.Len）
// 约束：进程内只有一个生效来源，重复调用以最后一次为准
func TrackPlatforms(fn func() int) { platformsSource.Store(&fn) }

// 文档注释：返回 Prometheus 指标监听器，在 {API_BASE}/metrics 挂载
func Handler() http.Handler { return promhttp.Handler() }
