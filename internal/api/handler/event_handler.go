package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"slotswap/internal/dto"
	"slotswap/internal/service"
	"slotswap/pkg/response"
)

// EventHandler 时间槽模块 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// List 我的时间槽
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, events)
}

// Create 创建时间槽
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// Update 部分更新时间槽
// PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	eventID := c.Param("id")
	if !IsValidID(eventID) {
		h.handleEventError(c, service.ErrEventNotFound)
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), eventID, userID, &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// Delete 删除时间槽
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	eventID := c.Param("id")
	if !IsValidID(eventID) {
		h.handleEventError(c, service.ErrEventNotFound)
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), eventID, userID); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, dto.MessageResponse{Message: "Event deleted successfully"})
}

// handleEventError 统一处理时间槽模块业务错误
func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12101, "时间槽不存在")
	case errors.Is(err, service.ErrEventSwapPending):
		response.BadRequest(c, 12102, "时间槽处于换班流程中，不能修改状态")
	case errors.Is(err, service.ErrInvalidEventStatus):
		response.BadRequest(c, 12103, "时间槽状态无效")
	case errors.Is(err, service.ErrEventConflict):
		response.Conflict(c, 12104, "时间槽已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
