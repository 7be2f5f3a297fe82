// 包 store：PostgreSQL 数据访问层，记录平台文件上传历史与查询统计
package store

import (
	"context"
	"database/sql"
	"time"

	"adcompass/internal/logger"

	"github.com/cockroachdb/errors"
)

// Store：数据库访问入口
// 约束：nil *Store 表示未启用数据库，所有方法均为空操作，调用方无需判空
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// LoadRecord：一次成功上传的摘要
type LoadRecord struct {
	ID        int64     `json:"id"`
	LoadedAt  time.Time `json:"loadedAt"`
	Platforms int       `json:"platforms"`
	Skipped   int       `json:"skipped"`
	Bytes     int64     `json:"bytes"`
	Source    string    `json:"source"`
}

// RecordLoad：写入一条上传历史
// 背景：仅用于审计与统计展示，不用于重启后恢复注册表
func (s *Store) RecordLoad(ctx context.Context, r LoadRecord) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO _platform_loads(platforms, skipped, bytes, source) VALUES($1,$2,$3,$4)",
		r.Platforms, r.Skipped, r.Bytes, r.Source)
	if err != nil {
		return errors.Wrap(err, "record load")
	}
	logger.L().Debug("store_load_recorded", "platforms", r.Platforms, "skipped", r.Skipped)
	return nil
}

// RecentLoads：按时间倒序返回最近的上传记录
func (s *Store) RecentLoads(ctx context.Context, limit int) ([]LoadRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, loaded_at, platforms, skipped, bytes, source FROM _platform_loads ORDER BY loaded_at DESC, id DESC LIMIT $1", limit)
	if err != nil {
		return nil, errors.Wrap(err, "query loads")
	}
	defer rows.Close()
	var out []LoadRecord
	for rows.Next() {
		var r LoadRecord
		if err := rows.Scan(&r.ID, &r.LoadedAt, &r.Platforms, &r.Skipped, &r.Bytes, &r.Source); err != nil {
			return nil, errors.Wrap(err, "scan load")
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "iterate loads")
}

// IncrSearchStats：查询后递增累计与当日计数；empty 表示未命中任何平台
// 约束：统计失败只记录日志，不影响查询结果
func (s *Store) IncrSearchStats(ctx context.Context, empty bool) {
	if s == nil {
		return
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE _search_stats_total SET total_queries=total_queries+1, empty_queries=empty_queries+$1 WHERE id=1",
		boolToInt(empty)); err != nil {
		logger.L().Debug("stats_total_error", "err", err)
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO _search_stats_daily(day, queries) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET queries=_search_stats_daily.queries+1"); err != nil {
		logger.L().Debug("stats_daily_error", "err", err)
	}
}

// Totals：统计返回结构
type Totals struct {
	Total int64 `json:"total"`
	Empty int64 `json:"empty"`
	Today int64 `json:"today"`
	Loads int64 `json:"loads"`
}

// GetTotals：读取累计、当日查询次数与上传次数；缺失的行按 0 处理
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	if s == nil {
		return &t, nil
	}
	err := s.db.QueryRowContext(ctx, "SELECT total_queries, empty_queries FROM _search_stats_total WHERE id=1").Scan(&t.Total, &t.Empty)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "query totals")
	}
	err = s.db.QueryRowContext(ctx, "SELECT queries FROM _search_stats_daily WHERE day=current_date").Scan(&t.Today)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "query daily")
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM _platform_loads").Scan(&t.Loads); err != nil {
		return nil, errors.Wrap(err, "count loads")
	}
	logger.L().Debug("stats_totals", "total", t.Total, "today", t.Today, "loads", t.Loads)
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
