package migrate

import (
	"context"
	"database/sql"

	"adcompass/internal/logger"

	"github.com/cockroachdb/errors"
)

// 背景：首次运行自动创建上传历史与查询统计表；注册表本身只在内存中，不落库
// 约束：使用 IF NOT EXISTS，可重复执行
var statements = []string{
	`CREATE TABLE IF NOT EXISTS _platform_loads (
        id BIGSERIAL PRIMARY KEY,
        loaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        platforms INT NOT NULL,
        skipped INT NOT NULL DEFAULT 0,
        bytes BIGINT NOT NULL DEFAULT 0,
        source TEXT NOT NULL DEFAULT ''
    )`,
	`CREATE INDEX IF NOT EXISTS idx_platform_loads_at ON _platform_loads(loaded_at DESC)`,
	`CREATE TABLE IF NOT EXISTS _search_stats_total (
        id INT PRIMARY KEY,
        total_queries BIGINT NOT NULL DEFAULT 0,
        empty_queries BIGINT NOT NULL DEFAULT 0
    )`,
	`CREATE TABLE IF NOT EXISTS _search_stats_daily (
        day DATE PRIMARY KEY,
        queries BIGINT NOT NULL DEFAULT 0
    )`,
	`INSERT INTO _search_stats_total(id, total_queries, empty_queries)
     VALUES(1, 0, 0)
     ON CONFLICT (id) DO NOTHING`,
}

// EnsureSchema 按顺序执行建表语句，任一失败即返回
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, s := range statements {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return errors.Wrapf(err, "schema statement %d", i)
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
