package registry

import (
	"strings"
)

// SkipReason：被丢弃行的原因
type SkipReason string

const (
	SkipNoSeparator SkipReason = "no_separator"
	SkipEmptyName   SkipReason = "empty_name"
	SkipNoLocations SkipReason = "no_locations"
	SkipInternal    SkipReason = "internal"
)

// Skipped：一条被丢弃的输入行（行号从 1 开始）
type Skipped struct {
	Line   int        `json:"line"`
	Reason SkipReason `json:"reason"`
	Text   string     `json:"text"`
}

// Report：解析结果，Platforms 为接受的记录，Skipped 仅用于诊断，不影响加载数量
type Report struct {
	Platforms []Platform
	Skipped   []Skipped
}

// lineResult：单行解析结果，要么接受一条记录，要么跳过（空行跳过不计入诊断）
type lineResult struct {
	platform Platform
	ok       bool
	blank    bool
	reason   SkipReason
}

// Parse：将平台文件内容解析为记录列表
// 格式：每行 `<名称>:<地域1>,<地域2>,...`，按 '\n' 分行；空行忽略，格式错误的行静默丢弃
// 异常：内容为空或全空白时返回带 ErrValidation 标记的错误
func Parse(raw string) ([]Platform, error) {
	rep, err := ParseReport(raw)
	if err != nil {
		return nil, err
	}
	return rep.Platforms, nil
}

// ParseReport：同 Parse，额外返回被丢弃行的诊断信息
func ParseReport(raw string) (*Report, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, Validationf("platform file content must not be empty")
	}
	rep := &Report{Platforms: make([]Platform, 0)}
	for i, line := range strings.Split(raw, "\n") {
		res := parseLine(line)
		switch {
		case res.blank:
		case res.ok:
			rep.Platforms = append(rep.Platforms, res.platform)
		default:
			rep.Skipped = append(rep.Skipped, Skipped{Line: i + 1, Reason: res.reason, Text: strings.TrimSpace(line)})
		}
	}
	return rep, nil
}

// parseLine：解析单行；任何意外 panic 都被收敛为跳过该行，不会中断整体加载
func parseLine(line string) (res lineResult) {
	defer func() {
		if r := recover(); r != nil {
			res = lineResult{reason: SkipInternal}
		}
	}()
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return lineResult{blank: true}
	}
	name, rest, found := strings.Cut(trimmed, ":")
	if !found {
		return lineResult{reason: SkipNoSeparator}
	}
	name = strings.TrimSpace(name)
	rest = strings.TrimSpace(rest)
	if name == "" {
		return lineResult{reason: SkipEmptyName}
	}
	if rest == "" {
		return lineResult{reason: SkipNoLocations}
	}
	var locs []string
	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		// 根路径不含任何地域段，参与匹配没有意义，解析阶段直接丢弃
		if tok == "" || isRoot(tok) {
			continue
		}
		locs = append(locs, tok)
	}
	if len(locs) == 0 {
		return lineResult{reason: SkipNoLocations}
	}
	return lineResult{platform: Platform{Name: name, Locations: locs}, ok: true}
}
