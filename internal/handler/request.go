package handler

import (
	"errors"
	"strconv"

	"treki/internal/logic"
	"treki/internal/middleware"
	"treki/internal/response"
	"treki/internal/types"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler 请求定义处理器
type RequestHandler struct {
	requestLogic *logic.RequestLogic
	sendLogic    *logic.SendLogic
}

// NewRequestHandler 创建请求定义处理器
func NewRequestHandler(requestLogic *logic.RequestLogic, sendLogic *logic.SendLogic) *RequestHandler {
	return &RequestHandler{
		requestLogic: requestLogic,
		sendLogic:    sendLogic,
	}
}

// List 获取当前用户全部请求定义
func (h *RequestHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	requests, err := h.requestLogic.ListRequests(userID)
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Success(c, requests)
}

// Get 获取请求定义详情
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "参数错误")
	}

	request, err := h.requestLogic.GetRequest(id, middleware.GetCurrentUserID(c))
	if err != nil {
		if errors.Is(err, logic.ErrNotFound) {
			return response.NotFound(c, "请求不存在")
		}
		return response.Error(c, "获取失败")
	}

	return response.Success(c, request)
}

// Create 创建请求定义
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var req types.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	request, err := h.requestLogic.CreateRequest(middleware.GetCurrentUserID(c), &req)
	if err != nil {
		return response.Error(c, err.Error())
	}

	return response.Created(c, request)
}

// Update 部分更新请求定义
func (h *RequestHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "参数错误")
	}

	var req types.UpdateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	request, err := h.requestLogic.UpdateRequest(id, middleware.GetCurrentUserID(c), &req)
	if err != nil {
		if errors.Is(err, logic.ErrNotFound) {
			return response.NotFound(c, "请求不存在")
		}
		return response.Error(c, err.Error())
	}

	return response.Success(c, request)
}

// Delete 删除请求定义
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "参数错误")
	}

	if err := h.requestLogic.DeleteRequest(id, middleware.GetCurrentUserID(c)); err != nil {
		if errors.Is(err, logic.ErrNotFound) {
			return response.NotFound(c, "请求不存在")
		}
		return response.Error(c, "删除失败")
	}

	return response.Success(c, nil)
}

// Send 代理执行出站调用
// 上游任何状态码都是正常结果，只有传输层失败才报错
func (h *RequestHandler) Send(c *fiber.Ctx) error {
	var req types.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	if req.URL == "" {
		return response.Error(c, "URL不能为空")
	}

	envelope, err := h.sendLogic.Send(c.UserContext(), middleware.GetCurrentUserID(c), &req)
	if err != nil {
		return response.ServerError(c, err.Error())
	}

	return response.Success(c, envelope)
}

// parseID 解析路径中的记录ID
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
