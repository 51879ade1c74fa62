package svc

import (
	"treki/internal/config"

	"gorm.io/gorm"
)

// ServiceContext 全局服务上下文
type ServiceContext struct {
	Config *config.Config
	DB     *gorm.DB
}

var Ctx *ServiceContext

// Init 初始化服务上下文
func Init(cfg *config.Config, db *gorm.DB) {
	Ctx = &ServiceContext{
		Config: cfg,
		DB:     db,
	}
}
