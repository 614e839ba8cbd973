package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"slotswap/internal/dto"
	"slotswap/internal/service"
	"slotswap/pkg/response"
)

// SwapHandler 换班模块 HTTP 处理器
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// Propose 发起换班
// POST /api/v1/swap-request
func (h *SwapHandler) Propose(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	switch {
	case !IsValidID(req.MySlotID):
		handleSwapError(c, service.ErrSlotNotFound)
		return
	case !IsValidID(req.TheirSlotID):
		handleSwapError(c, service.ErrTargetSlotNotFound)
		return
	}

	result, err := h.swapSvc.Propose(c.Request.Context(), userID, &req)
	if err != nil {
		handleSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// Respond 接受或拒绝换班
// POST /api/v1/swap-response/:id
func (h *SwapHandler) Respond(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SwapResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	requestID := c.Param("id")
	if !IsValidID(requestID) {
		handleSwapError(c, service.ErrSwapNotFound)
		return
	}

	result, err := h.swapSvc.Respond(c.Request.Context(), requestID, userID, *req.Accepted)
	if err != nil {
		handleSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// handleSwapError 统一处理换班模块业务错误
func handleSwapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 13101, "我的时间槽不存在")
	case errors.Is(err, service.ErrTargetSlotNotFound):
		response.NotFound(c, 13102, "对方的时间槽不存在")
	case errors.Is(err, service.ErrSlotNotSwappable):
		response.BadRequest(c, 13103, "我的时间槽不可交换")
	case errors.Is(err, service.ErrTargetSlotNotSwappable):
		response.BadRequest(c, 13104, "对方的时间槽不可交换")
	case errors.Is(err, service.ErrSwapNotFound):
		response.NotFound(c, 13105, "换班申请不存在")
	case errors.Is(err, service.ErrSwapForbidden):
		response.Forbidden(c, 13106, "无权处理该换班申请")
	case errors.Is(err, service.ErrSwapAlreadyProcessed):
		response.BadRequest(c, 13107, "换班申请已处理")
	case errors.Is(err, service.ErrSwapConflict):
		response.Conflict(c, 13108, "时间槽已被其他换班操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
