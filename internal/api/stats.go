package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

type statsResult struct {
	Platforms  int       `json:"platforms"`
	Generation uint64    `json:"generation"`
	Total      int64     `json:"total"`
	Empty      int64     `json:"empty"`
	Today      int64     `json:"today"`
	Loads      int64     `json:"loads"`
	GeoIP      *geoStats `json:"geoip,omitempty"`
}

// geoStats：当前加载的 mmdb 库信息，便于确认线上使用的库类型与构建时间
type geoStats struct {
	DatabaseType string    `json:"databaseType"`
	BuildEpoch   uint      `json:"buildEpoch"`
	BuiltAt      time.Time `json:"builtAt"`
	Languages    []string  `json:"languages,omitempty"`
}

// geoMetadata：由 geoloc.Resolver 实现；Locator 未实现时统计中不输出 geoip 字段
type geoMetadata interface {
	Metadata() maxminddb.Metadata
}

func geoStatsFrom(l Locator) *geoStats {
	m, ok := l.(geoMetadata)
	if !ok {
		return nil
	}
	md := m.Metadata()
	return &geoStats{
		DatabaseType: md.DatabaseType,
		BuildEpoch:   md.BuildEpoch,
		BuiltAt:      time.Unix(int64(md.BuildEpoch), 0).UTC(),
		Languages:    md.Languages,
	}
}

// handleStats：注册表规模、查询统计与 GeoIP 库信息；未启用数据库时统计项为 0
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	t, err := s.st.GetTotals(r.Context())
	if err != nil {
		writeInternal(w, "stats_error", err)
		return
	}
	writeOK(w, statsResult{
		Platforms:  s.reg.Len(),
		Generation: s.reg.Generation(),
		Total:      t.Total,
		Empty:      t.Empty,
		Today:      t.Today,
		Loads:      t.Loads,
		GeoIP:      geoStatsFrom(s.geo),
	})
}

// handleLoads：最近的上传历史，limit 默认 10，上限 100
func (s *server) handleLoads(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, 100)
		}
	}
	loads, err := s.st.RecentLoads(r.Context(), limit)
	if err != nil {
		writeInternal(w, "loads_error", err)
		return
	}
	if loads == nil {
		writeOK(w, []any{})
		return
	}
	writeOK(w, loads)
}
