package handler

import (
	"errors"

	"treki/internal/logic"
	"treki/internal/middleware"
	"treki/internal/response"
	"treki/internal/types"

	"github.com/gofiber/fiber/v2"
)

// HistoryHandler 调用历史处理器
type HistoryHandler struct {
	historyLogic *logic.HistoryLogic
}

// NewHistoryHandler 创建调用历史处理器
func NewHistoryHandler(historyLogic *logic.HistoryLogic) *HistoryHandler {
	return &HistoryHandler{historyLogic: historyLogic}
}

// List 获取当前用户最近的调用历史
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	entries, err := h.historyLogic.ListHistory(middleware.GetCurrentUserID(c))
	if err != nil {
		return response.Error(c, "获取失败")
	}

	return response.Success(c, entries)
}

// Append 追加一条调用历史
func (h *HistoryHandler) Append(c *fiber.Ctx) error {
	var req types.AppendHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "参数解析失败")
	}

	entry, err := h.historyLogic.AppendHistory(middleware.GetCurrentUserID(c), &req)
	if err != nil {
		return response.Error(c, "保存失败")
	}

	return response.Created(c, entry)
}

// Delete 删除单条调用历史
func (h *HistoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "参数错误")
	}

	if err := h.historyLogic.DeleteHistory(id, middleware.GetCurrentUserID(c)); err != nil {
		if errors.Is(err, logic.ErrNotFound) {
			return response.NotFound(c, "历史记录不存在")
		}
		return response.Error(c, "删除失败")
	}

	return response.Success(c, nil)
}

// Clear 清空当前用户全部调用历史
func (h *HistoryHandler) Clear(c *fiber.Ctx) error {
	if err := h.historyLogic.ClearHistory(middleware.GetCurrentUserID(c)); err != nil {
		return response.Error(c, "清空失败")
	}

	return response.Success(c, nil)
}
