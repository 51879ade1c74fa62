package handler

import (
	"treki/internal/logic"
	"treki/internal/middleware"
	"treki/internal/response"
	"treki/internal/types"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	userLogic *logic.UserLogic
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(userLogic *logic.UserLogic) *AuthHandler {
	return &AuthHandler{userLogic: userLogic}
}

// Register 注册
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req types.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	if req.Username == "" || req.Password == "" {
		return response.Error(c, "用户名和密码不能为空")
	}

	result, err := h.userLogic.Register(&req, c.IP())
	if err != nil {
		return response.Error(c, err.Error())
	}

	return response.Success(c, result)
}

// Login 登录
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	if req.Username == "" || req.Password == "" {
		return response.Error(c, "用户名和密码不能为空")
	}

	result, err := h.userLogic.Login(&req, c.IP())
	if err != nil {
		return response.Error(c, err.Error())
	}

	return response.Success(c, result)
}

// Logout 登出
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := middleware.GetToken(c)
	if token == "" {
		// 没有token也返回成功，用户可能已经登出
		return response.Success(c, nil)
	}
	_ = h.userLogic.Logout(token)
	return response.Success(c, nil)
}

// GetUserInfo 获取当前用户信息
func (h *AuthHandler) GetUserInfo(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "请先登录")
	}

	user, err := h.userLogic.GetUserInfo(userID)
	if err != nil {
		return response.Error(c, "获取用户信息失败")
	}

	return response.Success(c, user)
}
