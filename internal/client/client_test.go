package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treki/internal/types"
)

func writeJSON(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "POST", r.Method)

		var req types.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin", req.Username)

		writeJSON(w, 0, "success", types.LoginResult{
			Token: "tok-abc",
			User:  &types.UserInfo{ID: 1, Username: "admin"},
		})
	}))
	defer server.Close()

	c := New(server.URL, "")
	result, err := c.Login(context.Background(), "admin", "123456")
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", result.Token)
	assert.Equal(t, "tok-abc", c.token)
}

func TestRequestsCarryToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-abc", r.Header.Get("satoken"))
		writeJSON(w, 0, "success", []types.RequestInfo{{ID: 1, Name: "users"}})
	}))
	defer server.Close()

	c := New(server.URL, "tok-abc")
	list, err := c.ListRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "users", list[0].Name)
}

func TestAPIErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, -1, "记录不存在", nil)
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	_, err := c.GetRequest(context.Background(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "记录不存在")
}

func TestSendReturnsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/requests/send", r.URL.Path)

		var req types.SendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "GET", req.Method)

		writeJSON(w, 0, "success", types.Envelope{
			Status:     404,
			StatusText: "Not Found",
			Headers:    map[string]string{},
			Data:       json.RawMessage(`{"error":"nope"}`),
			Time:       "12ms",
		})
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	envelope, err := c.Send(context.Background(), &types.SendRequest{
		Method: "GET",
		URL:    "https://api.example.com/missing",
	})
	require.NoError(t, err)

	// 上游4xx仍是正常返回
	assert.Equal(t, 404, envelope.Status)
	assert.Equal(t, "Not Found", envelope.StatusText)
}

func TestDeleteHistory(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		writeJSON(w, 0, "success", nil)
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	require.NoError(t, c.DeleteHistory(context.Background(), 7))
	assert.Equal(t, "/api/history/7", gotPath)
	assert.Equal(t, "DELETE", gotMethod)
}
