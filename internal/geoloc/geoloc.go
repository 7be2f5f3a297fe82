// 包 geoloc：基于 MaxMind mmdb 的 IP → 地域路径解析，供按访问者 IP 查询平台
package geoloc

import (
	"net"
	"strings"

	"adcompass/internal/logger"
	"adcompass/internal/metrics"

	"github.com/cockroachdb/errors"
	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
)

// Resolver：mmdb 读取器包装
// 约束：geoip2.Reader 可并发读；City 库解析到国家/一级行政区，Country 库只解析到国家
type Resolver struct {
	db     *geoip2.Reader
	cityDB bool
}

// Open：打开 mmdb 文件并记录库类型
func Open(path string) (*Resolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open geoip db %s", path)
	}
	md := db.Metadata()
	r := &Resolver{db: db, cityDB: strings.Contains(md.DatabaseType, "City")}
	logger.L().Info("geoip_open_ok", "path", path, "type", md.DatabaseType, "build_epoch", md.BuildEpoch)
	return r, nil
}

// Metadata 返回底层库的元数据
func (r *Resolver) Metadata() maxminddb.Metadata { return r.db.Metadata() }

func (r *Resolver) Close() error { return r.db.Close() }

// Location：将 IP 解析为地域路径，如 `/ru/mow`（ISO 代码小写）
// 返回：未知 IP、解析失败或库中无国家信息时返回 false
func (r *Resolver) Location(ip string) (string, bool) {
	p := net.ParseIP(strings.TrimSpace(ip))
	if p == nil {
		metrics.GeoIPLookupsTotal.WithLabelValues("invalid").Inc()
		return "", false
	}
	var country string
	var subs []string
	if r.cityDB {
		rec, err := r.db.City(p)
		if err != nil {
			logger.L().Debug("geoip_lookup_error", "ip", ip, "err", err)
			metrics.GeoIPLookupsTotal.WithLabelValues("error").Inc()
			return "", false
		}
		country = rec.Country.IsoCode
		for _, s := range rec.Subdivisions {
			subs = append(subs, s.IsoCode)
		}
	} else {
		rec, err := r.db.Country(p)
		if err != nil {
			logger.L().Debug("geoip_lookup_error", "ip", ip, "err", err)
			metrics.GeoIPLookupsTotal.WithLabelValues("error").Inc()
			return "", false
		}
		country = rec.Country.IsoCode
	}
	loc := PathFrom(country, subs...)
	if loc == "" {
		metrics.GeoIPLookupsTotal.WithLabelValues("miss").Inc()
		return "", false
	}
	metrics.GeoIPLookupsTotal.WithLabelValues("hit").Inc()
	return loc, true
}

// PathFrom：由国家与各级行政区代码拼接地域路径；国家为空时返回空串，空的下级代码在首个空位截断
func PathFrom(country string, subdivisions ...string) string {
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(country)
	for _, s := range subdivisions {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			break
		}
		b.WriteString("/")
		b.WriteString(s)
	}
	return b.String()
}
