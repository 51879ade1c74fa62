package middleware

import (
	"strconv"
	"strings"

	"treki/internal/auth"
	"treki/internal/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware 认证中间件
// 所有业务路由都要求携带有效的Bearer凭证
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := GetToken(c)
		if token == "" {
			return response.Unauthorized(c, "请先登录")
		}

		if !auth.IsLogin(token) {
			return response.Unauthorized(c, "登录已过期，请重新登录")
		}

		loginId, err := auth.GetLoginId(token)
		if err != nil {
			return response.Unauthorized(c, "获取用户信息失败")
		}

		c.Locals("userId", loginId)
		c.Locals("token", token)

		return c.Next()
	}
}

// GetToken 从请求中获取Token
func GetToken(c *fiber.Ctx) string {
	// 从Header获取
	token := c.Get("satoken")
	if token != "" {
		return token
	}

	// 从Authorization获取
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimPrefix(authHeader, "Bearer ")
		}
		return authHeader
	}

	// 从Query获取
	return c.Query("satoken")
}

// parseUserID 解析用户ID
func parseUserID(userIdAny any) (uint, error) {
	switch v := userIdAny.(type) {
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	case int64:
		return uint(v), nil
	case float64:
		return uint(v), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(id), nil
	default:
		return 0, nil
	}
}

// GetCurrentUserID 获取当前用户ID
func GetCurrentUserID(c *fiber.Ctx) uint {
	userIdAny := c.Locals("userId")
	if userIdAny == nil {
		return 0
	}
	userID, _ := parseUserID(userIdAny)
	return userID
}
