package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treki/internal/types"
)

func TestSuggestHeadersSkipsPresent(t *testing.T) {
	rows := []types.KVRow{
		{Key: "content-type", Value: "text/xml", Enabled: true},
		{Enabled: true},
	}

	suggestions := SuggestHeaders(rows)
	for _, s := range suggestions {
		assert.NotEqual(t, "Content-Type", s.Key, "已存在的键不应再被建议（不区分大小写）")
	}
	// 其余常用头仍在建议列表里
	keys := make(map[string]bool)
	for _, s := range suggestions {
		keys[s.Key] = true
	}
	assert.True(t, keys["Accept"])
	assert.True(t, keys["User-Agent"])
}

func TestApplySuggestionFillsFirstBlankRow(t *testing.T) {
	rows := []types.KVRow{
		{Key: "X-A", Value: "1", Enabled: true},
		{Enabled: true},
	}

	rows = ApplySuggestion(rows, types.KVRow{Key: "Accept", Value: "application/json", Enabled: true})

	require.Len(t, rows, 3)
	assert.Equal(t, "Accept", rows[1].Key)
	assert.True(t, rows[2].IsBlank())
}

func TestApplySuggestionIgnoresDuplicate(t *testing.T) {
	rows := []types.KVRow{
		{Key: "accept", Value: "text/html", Enabled: true},
		{Enabled: true},
	}

	got := ApplySuggestion(rows, types.KVRow{Key: "Accept", Value: "application/json", Enabled: true})

	require.Len(t, got, 2)
	assert.Equal(t, "text/html", got[0].Value)
}

func TestApplySuggestionWithoutBlankRow(t *testing.T) {
	rows := []types.KVRow{{Key: "X-A", Value: "1", Enabled: true}}

	got := ApplySuggestion(rows, types.KVRow{Key: "Accept", Value: "application/json", Enabled: true})

	require.Len(t, got, 3)
	assert.Equal(t, "Accept", got[1].Key)
	assert.True(t, got[2].IsBlank())
}

func TestEditorApplyHeaderSuggestion(t *testing.T) {
	store, editor, req := newTestEditor(t, 0)

	// 键名不区分大小写，套用后提交落盘
	require.True(t, editor.ApplyHeaderSuggestion("content-type"))
	require.NoError(t, editor.Commit())

	got, _ := store.FindRequest(req.ID)
	require.Len(t, got.Headers, 1)
	assert.Equal(t, "Content-Type", got.Headers[0].Key)
	assert.Equal(t, "application/json", got.Headers[0].Value)

	// 已存在同名键时不再套用
	assert.False(t, editor.ApplyHeaderSuggestion("Content-Type"))
	// 未知键名不套用
	assert.False(t, editor.ApplyHeaderSuggestion("X-No-Such-Suggestion"))
}

func TestEditorSuggestHeadersReflectsBuffer(t *testing.T) {
	_, editor, _ := newTestEditor(t, 0)

	editor.SetHeader(0, types.KVRow{Key: "accept", Value: "text/html", Enabled: true})

	for _, s := range editor.SuggestHeaders() {
		assert.NotEqual(t, "Accept", s.Key)
	}
}
