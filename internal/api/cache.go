package api

import (
	"context"
	"encoding/json"
	"time"

	"adcompass/internal/logger"
	"adcompass/internal/metrics"
	"adcompass/internal/registry"

	"github.com/redis/go-redis/v9"
)

// searchCache：查询结果的 Redis 缓存
// 背景：键中带注册表快照键（实例 id + 代数），重新上传或清空后旧键自然失效，无需主动删除；
// 多个实例共享同一 Redis、或服务重启后代数重新从 0 计数时，实例 id 不同，互不命中。
// 约束：rc 为 nil 时不缓存；Redis 异常只降级为直接查询，不影响结果。
type searchCache struct {
	rc  *redis.Client
	ttl time.Duration
}

func cacheKey(snapshot, location string) string {
	return "platforms:search:" + snapshot + ":" + registry.Key(location)
}

// search：先按当前快照查缓存，未命中时查询注册表并按结果对应的快照回写
func (c *searchCache) search(ctx context.Context, reg *registry.Registry, location string) []string {
	if c.rc == nil {
		return reg.Search(location)
	}
	key := cacheKey(reg.SnapshotKey(), location)
	if s, err := c.rc.Get(ctx, key).Result(); err == nil {
		var names []string
		if json.Unmarshal([]byte(s), &names) == nil && names != nil {
			metrics.CacheHitsTotal.Inc()
			return names
		}
	} else if err != redis.Nil {
		logger.L().Debug("search_cache_get_error", "err", err)
	}
	metrics.CacheMissesTotal.Inc()
	names, snapshot := reg.SearchSnapshot(location)
	b, _ := json.Marshal(names)
	if err := c.rc.Set(ctx, cacheKey(snapshot, location), b, c.ttl).Err(); err != nil {
		logger.L().Debug("search_cache_set_error", "err", err)
	}
	return names
}
