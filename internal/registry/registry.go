package registry

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Registry：进程内广告平台注册表
// 背景：平台集合只会被整体替换或整体清空，不做增量合并；每个实例持有独立的锁，便于测试与多实例并存。
// 约束：所有读写经由同一把读写锁；Load 在锁外完成解析，锁内一次性替换，读方不会看到半更新状态。
type Registry struct {
	mu        sync.RWMutex
	id        string
	platforms []Platform
	gen       uint64
}

// New 返回空注册表
// 约束：每个实例生成随机 id；代数从 0 开始，仅在实例内单调，跨进程或多实例比较时必须带上 id
func New() *Registry {
	return &Registry{id: uuid.NewString(), platforms: make([]Platform, 0)}
}

// Load：解析并整体替换平台集合，返回实际保留的记录数（不是输入行数）
// 异常：内容为空时返回校验错误，原有数据保持不变
func (r *Registry) Load(raw string) (int, error) {
	rep, err := r.LoadReport(raw)
	if err != nil {
		return 0, err
	}
	return len(rep.Platforms), nil
}

// LoadReport：同 Load，返回完整解析报告（含被丢弃行），供上传接口与日志使用
// 约束：报告中的 Platforms 与注册表内部不共享底层数组
func (r *Registry) LoadReport(raw string) (*Report, error) {
	rep, err := ParseReport(raw)
	if err != nil {
		return nil, err
	}
	ps := make([]Platform, len(rep.Platforms))
	for i, p := range rep.Platforms {
		ps[i] = p.clone()
	}
	r.mu.Lock()
	r.platforms = ps
	r.gen++
	r.mu.Unlock()
	return rep, nil
}

// Search：按注册顺序返回命中请求地域的平台名称
func (r *Registry) Search(location string) []string {
	names, _ := r.SearchAt(location)
	return names
}

// SearchAt：同 Search，并返回结果对应的快照代数
// 背景：代数随每次 Load/Clear 递增，供外部缓存拼接键，保证新快照不会读到旧结果
// 约束：同一平台只加入一次（首个命中的地域即停止检查）；同名的不同记录各自计入
func (r *Registry) SearchAt(location string) ([]string, uint64) {
	out := make([]string, 0)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if Normalize(location) == "" {
		return out, r.gen
	}
	for _, p := range r.platforms {
		for _, loc := range p.Locations {
			if Matches(location, loc) {
				out = append(out, p.Name)
				break
			}
		}
	}
	return out, r.gen
}

// SearchSnapshot：同 SearchAt，快照以 SnapshotKey 形式返回
// 背景：共享 Redis 的多个实例（或重启前后的同一服务）代数会重复，外部缓存必须用全局唯一的快照键
func (r *Registry) SearchSnapshot(location string) ([]string, string) {
	names, gen := r.SearchAt(location)
	return names, snapshotKey(r.id, gen)
}

// SnapshotKey：当前快照的全局唯一标识，形如 `<实例 id>:<代数>`
func (r *Registry) SnapshotKey() string {
	return snapshotKey(r.id, r.Generation())
}

func snapshotKey(id string, gen uint64) string {
	return id + ":" + strconv.FormatUint(gen, 10)
}

// All：返回当前快照的深拷贝
func (r *Registry) All() []Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Platform, len(r.platforms))
	for i, p := range r.platforms {
		out[i] = p.clone()
	}
	return out
}

// Clear 清空注册表，可重复调用
func (r *Registry) Clear() {
	r.mu.Lock()
	r.platforms = make([]Platform, 0)
	r.gen++
	r.mu.Unlock()
}

// Len 返回当前平台数量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.platforms)
}

// Generation 返回当前快照代数
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}
