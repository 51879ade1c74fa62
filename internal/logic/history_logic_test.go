package logic

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"treki/internal/model"
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

func appendTestEntry(t *testing.T, l *HistoryLogic, userID uint, ts time.Time) *model.HistoryEntry {
	t.Helper()
	timestamp := types.NewDateTime(ts)
	entry, err := l.AppendHistory(userID, &types.AppendHistoryRequest{
		Request:   types.RequestSnapshot{Method: "GET", URL: "https://api.example.com"},
		Response:  types.ResponseSnapshot{Status: 200, StatusText: "OK"},
		Timestamp: &timestamp,
	})
	require.NoError(t, err)
	return entry
}

// 只能删除自己的历史，他人的记录既报不存在也不被删掉
func TestDeleteHistoryOwnerScoped(t *testing.T) {
	l := NewHistoryLogic(newTestDB(t))
	entry := appendTestEntry(t, l, 1, time.Now())

	err := l.DeleteHistory(entry.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := l.ListHistory(1)
	require.NoError(t, err)
	require.Len(t, entries, 1, "他人删除不应影响记录")

	require.NoError(t, l.DeleteHistory(entry.ID, 1))
	entries, err = l.ListHistory(1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListHistoryNewestFirst(t *testing.T) {
	l := NewHistoryLogic(newTestDB(t))
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		appendTestEntry(t, l, 1, base.Add(time.Duration(i)*time.Minute))
	}

	entries, err := l.ListHistory(1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i-1].Timestamp.Time().Before(entries[i].Timestamp.Time()))
	}
}

func TestClearHistoryOnlyOwn(t *testing.T) {
	l := NewHistoryLogic(newTestDB(t))
	appendTestEntry(t, l, 1, time.Now())
	appendTestEntry(t, l, 2, time.Now())

	require.NoError(t, l.ClearHistory(1))

	entries, err := l.ListHistory(1)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = l.ListHistory(2)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// 清空空历史也成功
	require.NoError(t, l.ClearHistory(1))
}
