package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treki/internal/config"
	"treki/internal/types"
)

func TestForwardJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "token-1", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	f := NewForwarder(nil)
	envelope, err := f.Forward(context.Background(), &types.SendRequest{
		Method:  "POST",
		URL:     upstream.URL,
		Headers: map[string]string{"X-Api-Key": "token-1"},
		Body:    `{"name":"demo"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, 200, envelope.Status)
	assert.Equal(t, "OK", envelope.StatusText)
	assert.JSONEq(t, `{"ok":true}`, string(envelope.Data))
	assert.Contains(t, envelope.Headers, "Content-Type")
	assert.Regexp(t, `^\d+ms$`, envelope.Time)
}

func TestForwardUpstreamErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer upstream.Close()

	f := NewForwarder(nil)
	envelope, err := f.Forward(context.Background(), &types.SendRequest{
		Method: "GET",
		URL:    upstream.URL,
	})

	// 上游5xx是正常结果而不是错误
	require.NoError(t, err)
	assert.Equal(t, 500, envelope.Status)
	assert.Equal(t, "Internal Server Error", envelope.StatusText)
}

func TestForwardTransportError(t *testing.T) {
	f := NewForwarder(nil)
	envelope, err := f.Forward(context.Background(), &types.SendRequest{
		Method: "GET",
		URL:    "http://127.0.0.1:1",
	})

	require.Error(t, err)
	assert.Nil(t, envelope)
}

func TestForwardInvalidMethod(t *testing.T) {
	f := NewForwarder(nil)
	_, err := f.Forward(context.Background(), &types.SendRequest{
		Method: "TRACE",
		URL:    "http://example.com",
	})
	require.Error(t, err)
}

func TestForwardDefaultsToGet(t *testing.T) {
	var gotMethod string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	f := NewForwarder(nil)
	_, err := f.Forward(context.Background(), &types.SendRequest{URL: upstream.URL})
	require.NoError(t, err)
	assert.Equal(t, "GET", gotMethod)
}

func TestForwardNonJSONBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello world"))
	}))
	defer upstream.Close()

	f := NewForwarder(nil)
	envelope, err := f.Forward(context.Background(), &types.SendRequest{
		Method: "GET",
		URL:    upstream.URL,
	})
	require.NoError(t, err)

	// 非JSON体转义为JSON字符串内嵌
	var s string
	require.NoError(t, json.Unmarshal(envelope.Data, &s))
	assert.Equal(t, "hello world", s)
}

func TestForwardBodySizeLimit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer upstream.Close()

	f := NewForwarder(&config.ProxyConfig{MaxBodySize: 16})
	envelope, err := f.Forward(context.Background(), &types.SendRequest{
		Method: "GET",
		URL:    upstream.URL,
	})
	require.NoError(t, err)

	var s string
	require.NoError(t, json.Unmarshal(envelope.Data, &s))
	assert.Len(t, s, 16)
}

func TestForwardMultiValueHeaders(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("X-Tag", "a")
		w.Header().Add("X-Tag", "b")
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	f := NewForwarder(nil)
	envelope, err := f.Forward(context.Background(), &types.SendRequest{
		Method: "GET",
		URL:    upstream.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, "a, b", envelope.Headers["X-Tag"])
}
