package api

// apiResponse：统一响应信封
// 约束：字段名与前端约定一致（success / data / errorMessage），新增字段需评估兼容性
type apiResponse struct {
	Success      bool   `json:"success"`
	Data         any    `json:"data,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// uploadRequest：JSON 上传请求，Content 为平台文件全文
type uploadRequest struct {
	Content *string `json:"content"`
}

type uploadResult struct {
	Message      string `json:"message"`
	LoadedCount  int    `json:"loadedCount"`
	SkippedLines int    `json:"skippedLines"`
}

type searchRequest struct {
	Location *string `json:"location"`
}

// searchResult：查询结果；Location 为调用方原样传入（或由 IP 解析得到）的地域
type searchResult struct {
	Location  string   `json:"location"`
	Platforms []string `json:"platforms"`
	Count     int      `json:"count"`
}

type messageResult struct {
	Message string `json:"message"`
}

// maxLocationLen：查询地域的最大长度（字符数）
const maxLocationLen = 500
