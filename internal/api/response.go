package api

import (
	"encoding/json"
	"net/http"

	"adcompass/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v apiResponse) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Debug("http_encode_error", "err", err)
	}
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: false, ErrorMessage: msg})
}

// writeInternal：未分类错误只在日志中保留细节，对外返回通用消息
func writeInternal(w http.ResponseWriter, event string, err error, args ...any) {
	logger.L().Error(event, append([]any{"err", err}, args...)...)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
