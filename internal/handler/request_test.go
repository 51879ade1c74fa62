package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"treki/internal/logic"
	"treki/internal/model"
	"treki/internal/proxy"
	"treki/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "treki.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ApiRequest{}, &model.HistoryEntry{}))
	return db
}

// newTestApp 以固定用户身份挂好业务路由，认证换成直写 userId
func newTestApp(db *gorm.DB, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		return c.Next()
	})

	requestHandler := NewRequestHandler(logic.NewRequestLogic(db), logic.NewSendLogic(db, proxy.NewForwarder(nil)))
	historyHandler := NewHistoryHandler(logic.NewHistoryLogic(db))

	app.Post("/api/requests/send", requestHandler.Send)
	app.Delete("/api/history/:id", historyHandler.Delete)
	return app
}

type envelopeResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    types.Envelope `json:"data"`
}

func postSend(t *testing.T, app *fiber.App, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/requests/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// 上游500也是HTTP 200的正常结果，且旁路写入一条历史
func TestSendEmbedsUpstreamErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer upstream.Close()

	db := newTestDB(t)
	app := newTestApp(db, 1)

	resp := postSend(t, app, types.SendRequest{Method: "GET", URL: upstream.URL})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got envelopeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 0, got.Code)
	assert.Equal(t, 500, got.Data.Status)
	assert.Equal(t, "Internal Server Error", got.Data.StatusText)

	// 历史是旁路异步写的
	require.Eventually(t, func() bool {
		var count int64
		db.Model(&model.HistoryEntry{}).Where("user_id = ?", 1).Count(&count)
		return count == 1
	}, 2*time.Second, 20*time.Millisecond)

	var entry model.HistoryEntry
	require.NoError(t, db.Where("user_id = ?", 1).First(&entry).Error)
	assert.Equal(t, 500, entry.Response.Status)
	assert.Equal(t, upstream.URL, entry.Request.URL)
}

// 传输层失败才是错误响应，且不产生历史
func TestSendTransportFailure(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db, 1)

	resp := postSend(t, app, types.SendRequest{Method: "GET", URL: "http://127.0.0.1:1"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var count int64
	db.Model(&model.HistoryEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSendRequiresURL(t *testing.T) {
	app := newTestApp(newTestDB(t), 1)

	resp := postSend(t, app, types.SendRequest{Method: "GET"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got envelopeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, -1, got.Code)
}

// 删他人的历史走路由返回404，记录原样保留
func TestDeleteHistoryRouteOwnerScoped(t *testing.T) {
	db := newTestDB(t)

	entry := &model.HistoryEntry{
		UserID:    2,
		RequestID: "temp",
		Request:   model.RequestSnapshot{Method: "GET", URL: "https://api.example.com"},
		Response:  model.ResponseSnapshot{Status: 200, StatusText: "OK"},
		Timestamp: types.Now(),
	}
	require.NoError(t, db.Create(entry).Error)

	path := fmt.Sprintf("/api/history/%d", entry.ID)

	asUser1 := newTestApp(db, 1)
	resp, err := asUser1.Test(httptest.NewRequest("DELETE", path, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var count int64
	db.Model(&model.HistoryEntry{}).Count(&count)
	assert.Equal(t, int64(1), count, "他人删除不应影响记录")

	asUser2 := newTestApp(db, 2)
	resp, err = asUser2.Test(httptest.NewRequest("DELETE", path, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	db.Model(&model.HistoryEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
