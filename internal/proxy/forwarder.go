package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"treki/internal/config"
	"treki/internal/types"
)

const (
	// 出站请求默认超时时间
	defaultTimeout = 30 * time.Second

	// 响应体默认读取上限(10MB)
	defaultMaxBodySize = 10 << 20
)

// Forwarder 出站HTTP转发器
// 代为执行客户端解析好的请求，对上游状态码完全宽容：
// 任何完成的调用（含4xx/5xx）都是正常结果，只有传输层失败才返回error
type Forwarder struct {
	client      *http.Client
	maxBodySize int64
}

// NewForwarder 创建转发器
func NewForwarder(cfg *config.ProxyConfig) *Forwarder {
	timeout := defaultTimeout
	maxBodySize := int64(defaultMaxBodySize)
	if cfg != nil {
		if t := cfg.RequestTimeout(); t > 0 {
			timeout = t
		}
		if cfg.MaxBodySize > 0 {
			maxBodySize = cfg.MaxBodySize
		}
	}

	return &Forwarder{
		client: &http.Client{
			Timeout: timeout,
		},
		maxBodySize: maxBodySize,
	}
}

// Forward 执行出站调用并返回标准化Envelope
func (f *Forwarder) Forward(ctx context.Context, send *types.SendRequest) (*types.Envelope, error) {
	method := strings.ToUpper(strings.TrimSpace(send.Method))
	if method == "" {
		method = "GET"
	}
	if !types.IsValidMethod(method) {
		return nil, fmt.Errorf("不支持的HTTP方法: %s", send.Method)
	}

	var bodyReader io.Reader
	if send.Body != "" {
		bodyReader = strings.NewReader(send.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, send.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	for k, v := range send.Headers {
		if k == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	startTime := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	elapsed := time.Since(startTime)

	return &types.Envelope{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Headers:    flattenHeaders(resp.Header),
		Data:       types.RawJSONOrString(body),
		Time:       fmt.Sprintf("%dms", elapsed.Milliseconds()),
	}, nil
}

// statusText 提取状态文本，如 "200 OK" 中的 "OK"
func statusText(resp *http.Response) string {
	status := strings.TrimSpace(resp.Status)
	if idx := strings.IndexByte(status, ' '); idx >= 0 {
		return status[idx+1:]
	}
	return http.StatusText(resp.StatusCode)
}

// flattenHeaders 将多值响应头折叠为单值映射
func flattenHeaders(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for k, values := range h {
		headers[k] = strings.Join(values, ", ")
	}
	return headers
}
