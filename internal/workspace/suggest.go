package workspace

import (
	"strings"

	"treki/internal/types"
)

// 常用请求头建议列表
var commonHeaders = []types.KVRow{
	{Key: "Content-Type", Value: "application/json", Enabled: true},
	{Key: "Accept", Value: "application/json", Enabled: true},
	{Key: "Authorization", Value: "", Enabled: true},
	{Key: "User-Agent", Value: "Treki/1.0", Enabled: true},
	{Key: "Cache-Control", Value: "no-cache", Enabled: true},
	{Key: "Accept-Language", Value: "en-US,en;q=0.9", Enabled: true},
	{Key: "X-Requested-With", Value: "XMLHttpRequest", Enabled: true},
}

// SuggestHeaders 返回尚未出现在 rows 中的常用请求头（键名不区分大小写）
func SuggestHeaders(rows []types.KVRow) []types.KVRow {
	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		if r.Key != "" {
			present[strings.ToLower(r.Key)] = true
		}
	}

	out := make([]types.KVRow, 0, len(commonHeaders))
	for _, h := range commonHeaders {
		if !present[strings.ToLower(h.Key)] {
			out = append(out, h)
		}
	}
	return out
}

// SuggestHeaders 返回编辑缓冲中尚未出现的常用请求头
func (e *Editor) SuggestHeaders() []types.KVRow {
	e.mu.Lock()
	rows := e.buf.Headers
	e.mu.Unlock()
	return SuggestHeaders(rows)
}

// ApplyHeaderSuggestion 按键名套用一条常用请求头建议
// 无此建议键名或缓冲中已有同名键时返回 false
func (e *Editor) ApplyHeaderSuggestion(name string) bool {
	var suggestion *types.KVRow
	for i := range commonHeaders {
		if strings.EqualFold(commonHeaders[i].Key, name) {
			suggestion = &commonHeaders[i]
			break
		}
	}
	if suggestion == nil {
		return false
	}

	applied := false
	e.edit(func() {
		before := len(dropBlankRows(e.buf.Headers))
		e.buf.Headers = ApplySuggestion(e.buf.Headers, *suggestion)
		applied = len(dropBlankRows(e.buf.Headers)) > before
	})
	return applied
}

// ApplySuggestion 将建议头写入第一个空白行，没有空白行则插在尾部空白行之前
// rows 中已有同名键（不区分大小写）时不做任何修改
func ApplySuggestion(rows []types.KVRow, suggestion types.KVRow) []types.KVRow {
	for _, r := range rows {
		if strings.EqualFold(r.Key, suggestion.Key) {
			return rows
		}
	}

	for i, r := range rows {
		if r.IsBlank() {
			rows[i] = suggestion
			if i == len(rows)-1 {
				rows = append(rows, types.KVRow{Enabled: true})
			}
			return rows
		}
	}
	return append(rows, suggestion, types.KVRow{Enabled: true})
}
