package types

import "encoding/json"

// RequestSnapshot 历史记录中的请求快照
type RequestSnapshot struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// ResponseSnapshot 历史记录中的响应快照
type ResponseSnapshot struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Headers    map[string]string `json:"headers"`
	Data       json.RawMessage   `json:"data"`
}

// AppendHistoryRequest 手动写入历史请求
type AppendHistoryRequest struct {
	RequestID string           `json:"requestId"`
	Request   RequestSnapshot  `json:"request"`
	Response  ResponseSnapshot `json:"response"`
	Timestamp *DateTime        `json:"timestamp"`
}

// HistoryInfo 历史记录响应
type HistoryInfo struct {
	ID        uint             `json:"id"`
	RequestID string           `json:"requestId"`
	Request   RequestSnapshot  `json:"request"`
	Response  ResponseSnapshot `json:"response"`
	Timestamp *DateTime        `json:"timestamp"`
}
