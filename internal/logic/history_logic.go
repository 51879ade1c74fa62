package logic

import (
	"time"

	"treki/internal/model"
	"treki/internal/types"

	"gorm.io/gorm"
)

// 历史列表单次返回上限
const historyListLimit = 100

// HistoryLogic 执行历史逻辑
type HistoryLogic struct {
	db *gorm.DB
}

// NewHistoryLogic 创建执行历史逻辑
func NewHistoryLogic(db *gorm.DB) *HistoryLogic {
	return &HistoryLogic{db: db}
}

// ListHistory 获取当前用户最近100条历史，按时间倒序
func (l *HistoryLogic) ListHistory(userID uint) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	err := l.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(historyListLimit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendHistory 写入一条历史记录
func (l *HistoryLogic) AppendHistory(userID uint, req *types.AppendHistoryRequest) (*model.HistoryEntry, error) {
	timestamp := types.NewDateTime(time.Now())
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		timestamp = *req.Timestamp
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = "temp"
	}

	entry := &model.HistoryEntry{
		UserID:    userID,
		RequestID: requestID,
		Request:   model.RequestSnapshot(req.Request),
		Response:  model.ResponseSnapshot(req.Response),
		Timestamp: timestamp,
	}

	if err := l.db.Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteHistory 删除一条历史记录，只能删除自己的
func (l *HistoryLogic) DeleteHistory(id uint, userID uint) error {
	result := l.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.HistoryEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearHistory 清空当前用户全部历史，空历史也视为成功
func (l *HistoryLogic) ClearHistory(userID uint) error {
	return l.db.Where("user_id = ?", userID).Delete(&model.HistoryEntry{}).Error
}
