package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"treki/internal/types"
	"treki/internal/workspace"
)

// Sender 出站执行端
// 服务端代理和本地直连都实现这个接口
type Sender interface {
	Send(ctx context.Context, req *types.SendRequest) (*types.Envelope, error)
}

// Execute 将请求定义解析为一次出站调用并返回标准化结果
// 参数过滤、认证合成、体编码全部在这里完成；传输层失败产生 status=0 的占位结果
func Execute(ctx context.Context, sender Sender, req *workspace.Request) *types.Envelope {
	send, err := Resolve(req)
	if err != nil {
		return types.NewErrorEnvelope(err.Error())
	}

	start := time.Now()
	envelope, err := sender.Send(ctx, send)
	if err != nil {
		return types.NewErrorEnvelope(err.Error())
	}

	envelope.Time = fmt.Sprintf("%dms", time.Since(start).Milliseconds())
	return envelope
}

// Resolve 把请求定义解析为自包含的出站请求
func Resolve(req *workspace.Request) (*types.SendRequest, error) {
	finalURL := resolveURL(req.URL, req.Params)
	headers := types.HeaderRowsToMap(req.Headers)

	// GET请求不携带体
	var body string
	if req.Method != "GET" {
		var contentType string
		var err error
		body, contentType, err = EncodeBody(req.Body)
		if err != nil {
			return nil, fmt.Errorf("请求体编码失败: %w", err)
		}
		if contentType != "" && !hasHeader(headers, "Content-Type") {
			headers["Content-Type"] = contentType
		}
	}

	finalURL = applyAuth(headers, finalURL, req.Auth)

	return &types.SendRequest{
		Method:    req.Method,
		URL:       finalURL,
		Headers:   headers,
		Body:      body,
		RequestID: req.ID,
	}, nil
}

// resolveURL 把启用的查询参数拼接到URL上
// 已带查询串的URL用 & 续接，否则用 ? 起始
func resolveURL(rawURL string, params []types.KVRow) string {
	var pairs []string
	for _, p := range params {
		if !p.Enabled || p.Key == "" {
			continue
		}
		pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	if len(pairs) == 0 {
		return rawURL
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + strings.Join(pairs, "&")
}

// applyAuth 按认证类型合成请求头或查询参数，返回可能被改写的URL
func applyAuth(headers map[string]string, rawURL string, auth types.AuthSpec) string {
	switch auth.Type {
	case types.AuthBasic:
		if auth.Params.Username == "" || auth.Params.Password == "" {
			break
		}
		cred := auth.Params.Username + ":" + auth.Params.Password
		headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(cred))

	case types.AuthBearer:
		if auth.Params.Token == "" {
			break
		}
		headers["Authorization"] = "Bearer " + auth.Params.Token

	case types.AuthAPIKey:
		if auth.Params.Key == "" || auth.Params.Value == "" {
			break
		}
		if auth.Params.AddTo == types.AddToQuery {
			sep := "?"
			if strings.Contains(rawURL, "?") {
				sep = "&"
			}
			rawURL += sep + url.QueryEscape(auth.Params.Key) + "=" + url.QueryEscape(auth.Params.Value)
		} else {
			headers[auth.Params.Key] = auth.Params.Value
		}
	}
	return rawURL
}

// hasHeader 不区分大小写地判断头是否已设置
func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
