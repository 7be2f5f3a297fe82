package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"adcompass/internal/logger"
	"adcompass/internal/metrics"
	"adcompass/internal/registry"
	"adcompass/internal/store"

	"github.com/cockroachdb/errors"
)

// handleUpload：上传平台文件并整体替换注册表
// 支持三种请求体：application/json {"content": "..."}、text/plain 原文、multipart/form-data 的 file 字段
func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	l := logger.L()
	l.Info("platforms_upload_begin")
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	content, source, err := s.readUpload(r)
	if err != nil {
		s.uploadFailed(w, err)
		return
	}
	rep, err := s.reg.LoadReport(content)
	if err != nil {
		s.uploadFailed(w, err)
		return
	}
	n := len(rep.Platforms)
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	l.Info("platforms_load_ok", "count", n, "skipped", len(rep.Skipped), "source", source)
	for _, sk := range rep.Skipped {
		l.Debug("platforms_line_skipped", "line", sk.Line, "reason", sk.Reason)
	}
	rec := store.LoadRecord{Platforms: n, Skipped: len(rep.Skipped), Bytes: int64(len(content)), Source: source}
	if err := s.st.RecordLoad(r.Context(), rec); err != nil {
		l.Error("store_load_error", "err", err)
	}
	writeOK(w, uploadResult{
		Message:      "successfully loaded " + strconv.Itoa(n) + " advertising platforms",
		LoadedCount:  n,
		SkippedLines: len(rep.Skipped),
	})
}

func (s *server) uploadFailed(w http.ResponseWriter, err error) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		metrics.UploadsTotal.WithLabelValues("too_large").Inc()
		logger.L().Warn("platforms_upload_too_large", "limit", tooBig.Limit)
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds "+strconv.FormatInt(tooBig.Limit, 10)+" bytes")
	case registry.IsValidation(err):
		metrics.UploadsTotal.WithLabelValues("invalid").Inc()
		logger.L().Warn("platforms_upload_invalid", "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		writeInternal(w, "platforms_upload_error", err)
	}
}

// readUpload：按 Content-Type 取出平台文件全文，返回内容与来源标记
func (s *server) readUpload(r *http.Request) (string, string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "multipart/form-data":
		f, hdr, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return "", "", registry.Validationf("file is required")
			}
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return "", "", err
			}
			return "", "", registry.Validationf("invalid multipart body: %v", err)
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return "", "", errors.Wrap(err, "read uploaded file")
		}
		return string(b), "multipart:" + hdr.Filename, nil
	case "text/plain":
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return "", "", errors.Wrap(err, "read body")
		}
		return string(b), "text", nil
	default:
		var req uploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return "", "", err
			}
			return "", "", registry.Validationf("invalid JSON body: %v", err)
		}
		if req.Content == nil {
			return "", "", registry.Validationf("content is required")
		}
		return *req.Content, "json", nil
	}
}

func (s *server) handleSearchJSON(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Location == nil {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}
	s.search(w, r, *req.Location)
}

// handleSearchQuery：GET 查询，location 优先；否则按 ip 参数解析地域（ip=me 表示访问者自身）
func (s *server) handleSearchQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("location") {
		s.search(w, r, q.Get("location"))
		return
	}
	ip := strings.TrimSpace(q.Get("ip"))
	if ip == "" {
		writeError(w, http.StatusBadRequest, "location or ip is required")
		return
	}
	if s.geo == nil {
		writeError(w, http.StatusNotImplemented, "ip lookup is not configured")
		return
	}
	if ip == "me" {
		ip = visitorIP(r)
	}
	loc, ok := s.geo.Location(ip)
	if !ok {
		logger.L().Info("platforms_search_ip_unknown", "ip", ip)
		writeOK(w, searchResult{Location: "", Platforms: []string{}, Count: 0})
		return
	}
	logger.L().Debug("platforms_search_ip_resolved", "ip", ip, "location", loc)
	s.search(w, r, loc)
}

func (s *server) search(w http.ResponseWriter, r *http.Request, location string) {
	if strings.TrimSpace(location) == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}
	if utf8.RuneCountInString(location) > maxLocationLen {
		writeError(w, http.StatusBadRequest, "location must not exceed "+strconv.Itoa(maxLocationLen)+" characters")
		return
	}
	start := time.Now()
	metrics.SearchesTotal.Inc()
	names := s.cache.search(r.Context(), s.reg, location)
	metrics.SearchDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if len(names) == 0 {
		metrics.EmptySearchesTotal.Inc()
	}
	s.st.IncrSearchStats(r.Context(), len(names) == 0)
	logger.L().Info("platforms_search", "location", location, "count", len(names))
	writeOK(w, searchResult{Location: location, Platforms: names, Count: len(names)})
}

func (s *server) handleAll(w http.ResponseWriter, r *http.Request) {
	ps := s.reg.All()
	logger.L().Info("platforms_list", "count", len(ps))
	writeOK(w, ps)
}

func (s *server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.reg.Clear()
	logger.L().Info("platforms_cleared")
	writeOK(w, messageResult{Message: "all data cleared"})
}
