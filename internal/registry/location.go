package registry

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize：地域字符串归一化为规范路径
// 规则：去空白 → 去掉首尾 '/' → 补一个前导 '/'；空白输入返回空串
// 示例：`ru/msk`、`/ru/msk/`、` /ru/msk` 均得到 `/ru/msk`；`/`、`//` 得到根路径 `/`
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return "/" + strings.Trim(s, "/")
}

// Key：归一化并做 Unicode 大小写折叠，作为比较与缓存键使用
func Key(raw string) string {
	n := Normalize(raw)
	if n == "" {
		return ""
	}
	// cases.Caser 有内部状态，不能跨协程共享，按次创建
	return cases.Fold().String(n)
}

// isRoot：规范形式不含任何路径段
func isRoot(raw string) bool { return Normalize(raw) == "/" }

// Matches：判断请求地域是否命中平台声明的地域（大小写不敏感）
// 命中条件（任一成立）：
// 1) 两者规范形式相等；
// 2) 请求是声明地域的下级，如请求 /ru/msk/center 命中声明 /ru/msk；
// 3) 请求是声明地域的上级，如请求 /ru 命中声明 /ru/msk。
// 约束：任一侧归一化为空串时不命中，避免空前缀匹配一切
func Matches(requested, declared string) bool {
	r := Key(requested)
	d := Key(declared)
	if r == "" || d == "" {
		return false
	}
	return r == d || strings.HasPrefix(r, d+"/") || strings.HasPrefix(d, r+"/")
}
