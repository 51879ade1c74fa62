package model

import (
	"treki/internal/types"
)

// User 用户模型
type User struct {
	BaseModel
	Username    string          `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password    string          `gorm:"size:255;not null" json:"-"`
	Email       string          `gorm:"size:100" json:"email"`
	Status      int8            `gorm:"default:1" json:"status"` // 0:禁用 1:启用
	LastLoginAt *types.DateTime `json:"lastLoginAt"`
	LastLoginIP string          `gorm:"size:50" json:"lastLoginIp"`
}

// TableName 表名
func (User) TableName() string {
	return "treki_user"
}
