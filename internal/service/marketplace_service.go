package service

import (
	"context"

	"go.uber.org/zap"

	"slotswap/internal/dto"
	"slotswap/internal/model"
	"slotswap/internal/repository"
)

// MarketplaceService 市场只读视图
// 关联的用户或槽位已不存在时仅省略对应字段，不视为错误
type MarketplaceService interface {
	ListSwappable(ctx context.Context, callerID string) ([]dto.SwappableSlotResponse, error)
	Incoming(ctx context.Context, userID string) ([]dto.SwapRequestDetailResponse, error)
	Outgoing(ctx context.Context, userID string) ([]dto.SwapRequestDetailResponse, error)
}

type marketplaceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMarketplaceService 创建 MarketplaceService 实例
func NewMarketplaceService(repo *repository.Repository, logger *zap.Logger) MarketplaceService {
	return &marketplaceService{repo: repo, logger: logger}
}

// ────────────────────── ListSwappable ──────────────────────

// ListSwappable 列出他人可交换的时间槽，不含调用者自己的
func (s *marketplaceService) ListSwappable(ctx context.Context, callerID string) ([]dto.SwappableSlotResponse, error) {
	events, err := s.repo.Event.ListSwappable(ctx, callerID)
	if err != nil {
		s.logger.Error("查询可交换时间槽失败", zap.Error(err))
		return nil, err
	}

	ownerIDs := make([]string, 0, len(events))
	for _, e := range events {
		ownerIDs = append(ownerIDs, e.UserID)
	}
	users, err := s.loadUsers(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SwappableSlotResponse, 0, len(events))
	for i := range events {
		item := dto.SwappableSlotResponse{EventResponse: *toEventResponse(&events[i])}
		if u, ok := users[events[i].UserID]; ok {
			item.UserName = u.Name
			item.UserEmail = u.Email
		}
		result = append(result, item)
	}
	return result, nil
}

// ────────────────────── Incoming / Outgoing ──────────────────────

// Incoming 发给我的待处理申请
func (s *marketplaceService) Incoming(ctx context.Context, userID string) ([]dto.SwapRequestDetailResponse, error) {
	reqs, err := s.repo.SwapRequest.ListIncoming(ctx, userID, model.SwapStatusPending)
	if err != nil {
		s.logger.Error("查询收到的换班申请失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.enrich(ctx, reqs)
}

// Outgoing 我发出的全部申请（任意状态）
func (s *marketplaceService) Outgoing(ctx context.Context, userID string) ([]dto.SwapRequestDetailResponse, error) {
	reqs, err := s.repo.SwapRequest.ListOutgoing(ctx, userID)
	if err != nil {
		s.logger.Error("查询发出的换班申请失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.enrich(ctx, reqs)
}

// ── 内部辅助方法 ──

// enrich 批量补全申请双方用户与槽位信息
func (s *marketplaceService) enrich(ctx context.Context, reqs []model.SwapRequest) ([]dto.SwapRequestDetailResponse, error) {
	userIDs := make([]string, 0, len(reqs)*2)
	slotIDs := make([]string, 0, len(reqs)*2)
	for i := range reqs {
		userIDs = append(userIDs, reqs[i].RequesterID, reqs[i].TargetUserID)
		slotIDs = append(slotIDs, reqs[i].SlotIDs()...)
	}

	users, err := s.loadUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.Event.ListByIDs(ctx, dedupe(slotIDs))
	if err != nil {
		s.logger.Error("批量查询时间槽失败", zap.Error(err))
		return nil, err
	}
	slots := make(map[string]*dto.EventResponse, len(events))
	for i := range events {
		slots[events[i].EventID] = toEventResponse(&events[i])
	}

	result := make([]dto.SwapRequestDetailResponse, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		item := dto.SwapRequestDetailResponse{
			SwapRequestResponse: *toSwapRequestResponse(r),
			RequesterSlot:       slots[r.RequesterSlotID],
			TargetSlot:          slots[r.TargetSlotID],
		}
		if u, ok := users[r.RequesterID]; ok {
			item.RequesterName = u.Name
			item.RequesterEmail = u.Email
		}
		if u, ok := users[r.TargetUserID]; ok {
			item.TargetUserName = u.Name
			item.TargetUserEmail = u.Email
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *marketplaceService) loadUsers(ctx context.Context, ids []string) (map[string]*model.User, error) {
	users, err := s.repo.User.ListByIDs(ctx, dedupe(ids))
	if err != nil {
		s.logger.Error("批量查询用户失败", zap.Error(err))
		return nil, err
	}
	m := make(map[string]*model.User, len(users))
	for i := range users {
		m[users[i].UserID] = &users[i]
	}
	return m, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
