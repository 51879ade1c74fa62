package model

import (
	"database/sql/driver"

	"treki/internal/types"
)

// KVRows 键值行列表，存储为JSON列
type KVRows []types.KVRow

func (r KVRows) Value() (driver.Value, error) {
	if r == nil {
		return jsonValue([]types.KVRow{})
	}
	return jsonValue([]types.KVRow(r))
}

func (r *KVRows) Scan(value any) error {
	return jsonScan(r, value)
}

// GormDataType 实现GORM的DataType接口
func (KVRows) GormDataType() string {
	return "text"
}

// Body 请求体定义，存储为JSON列
type Body types.BodySpec

func (b Body) Value() (driver.Value, error) {
	return jsonValue(types.BodySpec(b))
}

func (b *Body) Scan(value any) error {
	return jsonScan(b, value)
}

func (Body) GormDataType() string {
	return "text"
}

// Auth 认证定义，存储为JSON列
type Auth types.AuthSpec

func (a Auth) Value() (driver.Value, error) {
	return jsonValue(types.AuthSpec(a))
}

func (a *Auth) Scan(value any) error {
	return jsonScan(a, value)
}

func (Auth) GormDataType() string {
	return "text"
}

// ApiRequest 请求定义模型
type ApiRequest struct {
	BaseModel
	UserID       uint   `gorm:"index;not null" json:"userId"`
	Name         string `gorm:"size:200;not null" json:"name"`
	Method       string `gorm:"size:10;default:GET" json:"method"`
	URL          string `gorm:"size:2000;not null" json:"url"`
	Headers      KVRows `gorm:"type:text" json:"headers"`
	Params       KVRows `gorm:"type:text" json:"params"`
	Body         Body   `gorm:"type:text" json:"body"`
	Auth         Auth   `gorm:"type:text" json:"auth"`
	CollectionID string `gorm:"size:64;index" json:"collectionId"`
}

// TableName 表名
func (ApiRequest) TableName() string {
	return "treki_request"
}
