package model

import (
	"database/sql/driver"

	"treki/internal/types"
)

// RequestSnapshot 历史请求快照，存储为JSON列
type RequestSnapshot types.RequestSnapshot

func (s RequestSnapshot) Value() (driver.Value, error) {
	return jsonValue(types.RequestSnapshot(s))
}

func (s *RequestSnapshot) Scan(value any) error {
	return jsonScan(s, value)
}

func (RequestSnapshot) GormDataType() string {
	return "text"
}

// ResponseSnapshot 历史响应快照，存储为JSON列
type ResponseSnapshot types.ResponseSnapshot

func (s ResponseSnapshot) Value() (driver.Value, error) {
	return jsonValue(types.ResponseSnapshot(s))
}

func (s *ResponseSnapshot) Scan(value any) error {
	return jsonScan(s, value)
}

func (ResponseSnapshot) GormDataType() string {
	return "text"
}

// HistoryEntry 执行历史模型
// 创建后不再修改，只能删除
type HistoryEntry struct {
	BaseModel
	UserID    uint             `gorm:"index:idx_history_user_time;not null" json:"userId"`
	RequestID string           `gorm:"size:64" json:"requestId"`
	Request   RequestSnapshot  `gorm:"type:text" json:"request"`
	Response  ResponseSnapshot `gorm:"type:text" json:"response"`
	Timestamp types.DateTime   `gorm:"index:idx_history_user_time" json:"timestamp"`
}

// TableName 表名
func (HistoryEntry) TableName() string {
	return "treki_history"
}
