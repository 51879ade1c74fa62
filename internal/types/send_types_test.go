package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawJSONOrString(t *testing.T) {
	// 合法JSON原样内嵌
	raw := RawJSONOrString([]byte(`{"a":1}`))
	assert.JSONEq(t, `{"a":1}`, string(raw))

	// 非JSON转义为字符串
	raw = RawJSONOrString([]byte(`<html>oops`))
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	assert.Equal(t, `<html>oops`, s)

	// 空体落成空字符串
	assert.Equal(t, `""`, string(RawJSONOrString(nil)))
}

func TestNewErrorEnvelope(t *testing.T) {
	envelope := NewErrorEnvelope("connection refused")

	assert.Equal(t, 0, envelope.Status)
	assert.Equal(t, "Error", envelope.StatusText)
	assert.Equal(t, "0ms", envelope.Time)
	assert.JSONEq(t, `{"error":"connection refused"}`, string(envelope.Data))
}

func TestHeaderRowsToMap(t *testing.T) {
	m := HeaderRowsToMap([]KVRow{
		{Key: "X-A", Value: "1", Enabled: true},
		{Key: "X-B", Value: "2", Enabled: false},
		{Key: "", Value: "ignored", Enabled: true},
		{Key: "X-A", Value: "3", Enabled: true},
	})

	// 禁用行和空键被跳过，重复键后者覆盖前者
	assert.Equal(t, map[string]string{"X-A": "3"}, m)
}
