// 包 registry：广告平台注册表，负责平台文件解析、地域路径归一化与层级匹配
package registry

// Platform：一条广告平台记录
// 约束：Name 非空但不要求唯一；Locations 保持文件中的顺序，同一行内的重复地域不合并
type Platform struct {
	Name      string   `json:"name"`
	Locations []string `json:"locations"`
}

// clone：深拷贝，避免调用方修改返回值影响注册表内部状态
func (p Platform) clone() Platform {
	locs := make([]string, len(p.Locations))
	copy(locs, p.Locations)
	return Platform{Name: p.Name, Locations: locs}
}
