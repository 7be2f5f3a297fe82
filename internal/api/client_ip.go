package api

import (
	"net"
	"net/http"
	"strings"
)

// 文档注释：获取访问者 IP（用于 ip=me 的按来源查询）
// 背景：多层代理环境下优先常见反向代理头，最后回退远端地址。
// 约束：头部可被伪造，部署在不受信任的代理链路时需在网关层过滤。
func visitorIP(r *http.Request) string {
	h := r.Header
	if x := h.Get("x-forwarded-for"); x != "" {
		return strings.TrimSpace(strings.Split(x, ",")[0])
	}
	for _, k := range []string{"cf-connecting-ip", "x-real-ip", "x-client-ip"} {
		if x := h.Get(k); x != "" {
			return strings.TrimSpace(x)
		}
	}
	if x := h.Get("forwarded"); x != "" {
		i := strings.Index(strings.ToLower(x), "for=")
		if i >= 0 {
			y := x[i+4:]
			if p := strings.IndexAny(y, ";,"); p >= 0 {
				y = y[:p]
			}
			y = strings.Trim(y, "\" ")
			// 形如 "[2001:db8::1]:4711" 的 IPv6
			if strings.HasPrefix(y, "[") {
				if host, _, err := net.SplitHostPort(y); err == nil {
					return host
				}
				return strings.Trim(y, "[]")
			}
			return y
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
