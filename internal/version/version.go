// 包 version：构建信息，由 -ldflags "-X adcompass/internal/version.Commit=..." 注入
package version

var (
	Version = "dev"
	Commit  = "unknown"
)
