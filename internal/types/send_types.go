package types

import "encoding/json"

// SendRequest 代理发送请求
// method/url/headers/body 由调用方完全解析好，代理不再做参数/认证合成
type SendRequest struct {
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	Body      string            `json:"body"`
	RequestID string            `json:"requestId"`
}

// Envelope 标准化的执行结果
// 任何完成的出站调用（含4xx/5xx）都产生一个Envelope，只有传输层失败才没有
type Envelope struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Headers    map[string]string `json:"headers"`
	Data       json.RawMessage   `json:"data"`
	Time       string            `json:"time"`
}

// NewErrorEnvelope 构造失败占位Envelope（status=0）
func NewErrorEnvelope(message string) *Envelope {
	data, _ := json.Marshal(map[string]string{"error": message})
	return &Envelope{
		Status:     0,
		StatusText: "Error",
		Headers:    map[string]string{},
		Data:       data,
		Time:       "0ms",
	}
}

// RawJSONOrString 将响应体包装为JSON原文或JSON字符串
// 上游返回合法JSON时原样内嵌，否则按字符串转义后内嵌
func RawJSONOrString(body []byte) json.RawMessage {
	if len(body) == 0 {
		return json.RawMessage(`""`)
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return json.RawMessage(quoted)
}
