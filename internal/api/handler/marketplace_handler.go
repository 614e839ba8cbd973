package handler

import (
	"github.com/gin-gonic/gin"

	"slotswap/internal/service"
	"slotswap/pkg/response"
)

// MarketplaceHandler 市场视图 HTTP 处理器
type MarketplaceHandler struct {
	marketSvc service.MarketplaceService
}

// NewMarketplaceHandler 创建 MarketplaceHandler
func NewMarketplaceHandler(marketSvc service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketSvc: marketSvc}
}

// SwappableSlots 他人的可交换时间槽
// GET /api/v1/swappable-slots
func (h *MarketplaceHandler) SwappableSlots(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slots, err := h.marketSvc.ListSwappable(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, slots)
}

// Incoming 收到的待处理换班申请
// GET /api/v1/swap-requests/incoming
func (h *MarketplaceHandler) Incoming(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	reqs, err := h.marketSvc.Incoming(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, reqs)
}

// Outgoing 发出的换班申请
// GET /api/v1/swap-requests/outgoing
func (h *MarketplaceHandler) Outgoing(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	reqs, err := h.marketSvc.Outgoing(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, reqs)
}
