package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// maxLoggedBody 是调试日志中记录的请求/响应体最大字节数。
// 附件以 base64 图片上传，完整记录会让日志膨胀。
const maxLoggedBody = 4 << 10

// NewHTTPClient 返回一个在调试级别记录请求和响应的 HTTP 客户端。
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &HTTPRoundTripLogger{
			Transport: http.DefaultTransport,
		},
	}
}

// HTTPRoundTripLogger 包装另一个 RoundTripper 并记录每次往返。
// 认证相关的头部不会出现在日志中。
type HTTPRoundTripLogger struct {
	Transport http.RoundTripper
}

func (h *HTTPRoundTripLogger) RoundTrip(req *http.Request) (*http.Response, error) {
	debug := slog.Default().Enabled(req.Context(), slog.LevelDebug)

	var save io.ReadCloser
	var err error
	if debug {
		save, req.Body, err = drainBody(req.Body)
		if err != nil {
			slog.Error("HTTP请求失败", "method", req.Method, "url", req.URL, "error", err)
			return nil, err
		}
		slog.Debug(
			"HTTP请求",
			"method", req.Method,
			"url", req.URL,
			"headers", formatHeaders(req.Header),
			"body", bodyToString(save),
		)
	}

	start := time.Now()
	resp, err := h.Transport.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		slog.Error(
			"HTTP请求失败",
			"method", req.Method,
			"url", req.URL,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return resp, err
	}
	if !debug {
		return resp, nil
	}

	save, resp.Body, err = drainBody(resp.Body)
	slog.Debug(
		"HTTP响应",
		"status_code", resp.StatusCode,
		"headers", formatHeaders(resp.Header),
		"body", bodyToString(save),
		"duration_ms", duration.Milliseconds(),
		"error", err,
	)
	return resp, err
}

// bodyToString 把 JSON 格式化输出，并截断过长的内容。
func bodyToString(body io.ReadCloser) string {
	if body == nil {
		return ""
	}
	src, err := io.ReadAll(body)
	if err != nil {
		slog.Error("读取body失败", "error", err)
		return ""
	}
	var out string
	var b bytes.Buffer
	if json.Indent(&b, bytes.TrimSpace(src), "", "  ") != nil {
		out = string(src)
	} else {
		out = b.String()
	}
	if len(out) > maxLoggedBody {
		out = out[:maxLoggedBody] + "...(已截断)"
	}
	return out
}

// formatHeaders 复制头部并隐藏认证信息
func formatHeaders(headers http.Header) map[string][]string {
	filtered := make(map[string][]string, len(headers))
	for key, values := range headers {
		lowerKey := strings.ToLower(key)
		if strings.Contains(lowerKey, "authorization") ||
			strings.Contains(lowerKey, "api-key") ||
			strings.Contains(lowerKey, "token") ||
			strings.Contains(lowerKey, "secret") {
			filtered[key] = []string{"[已隐藏]"}
		} else {
			filtered[key] = values
		}
	}
	return filtered
}

// drainBody 读出 b 并返回两个内容相同的副本
func drainBody(b io.ReadCloser) (r1, r2 io.ReadCloser, err error) {
	if b == nil || b == http.NoBody {
		return http.NoBody, http.NoBody, nil
	}
	var buf bytes.Buffer
	if _, err = buf.ReadFrom(b); err != nil {
		return nil, b, err
	}
	if err = b.Close(); err != nil {
		return nil, b, err
	}
	return io.NopCloser(&buf), io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}
