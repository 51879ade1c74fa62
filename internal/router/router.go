package router

import (
	"treki/internal/config"
	"treki/internal/handler"
	"treki/internal/logic"
	"treki/internal/middleware"
	"treki/internal/proxy"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup 设置路由
func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	// 全局中间件
	app.Use(middleware.CORS(), middleware.RequestID(), middleware.Logger(), middleware.Recover())

	forwarder := proxy.NewForwarder(&cfg.Proxy)

	authHandler := handler.NewAuthHandler(logic.NewUserLogic(db))
	requestHandler := handler.NewRequestHandler(logic.NewRequestLogic(db), logic.NewSendLogic(db, forwarder))
	historyHandler := handler.NewHistoryHandler(logic.NewHistoryLogic(db))

	api := app.Group("/api")

	// ========== 公开路由 ==========
	pub := api.Group("/auth")
	pub.Post("/register", authHandler.Register)
	pub.Post("/login", authHandler.Login)
	pub.Post("/logout", authHandler.Logout)

	// ========== 需要认证的路由 ==========
	authed := api.Group("", middleware.AuthMiddleware())

	authed.Get("/auth/user-info", authHandler.GetUserInfo)

	// 请求定义
	// send 和 history 必须注册在 :id 之前，否则会被参数路由吞掉
	req := authed.Group("/requests")
	req.Get("", requestHandler.List)
	req.Post("", requestHandler.Create)
	req.Post("/send", requestHandler.Send)
	req.Get("/history", historyHandler.List)
	req.Get("/:id", requestHandler.Get)
	req.Put("/:id", requestHandler.Update)
	req.Delete("/:id", requestHandler.Delete)

	// 调用历史
	his := authed.Group("/history")
	his.Get("", historyHandler.List)
	his.Post("", historyHandler.Append)
	his.Delete("/:id", historyHandler.Delete)
	his.Delete("", historyHandler.Clear)
}
