package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotswap/internal/dto"
	"slotswap/internal/model"
	"slotswap/internal/repository"
	pkgerrors "slotswap/pkg/errors"
)

// ── 时间槽模块业务错误 ──

var (
	ErrEventNotFound      = errors.New("时间槽不存在")
	ErrEventSwapPending   = errors.New("时间槽处于换班流程中，不能修改状态")
	ErrInvalidEventStatus = errors.New("时间槽状态无效")
	ErrEventConflict      = errors.New("时间槽已被其他操作修改，请刷新后重试")
)

// EventService 时间槽业务接口
//
// 所有者只能在 BUSY 与 SWAPPABLE 之间切换状态；SWAP_PENDING 与所有权变更
// 只由 SwapService 写入。
type EventService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	List(ctx context.Context, ownerID string) ([]dto.EventResponse, error)
	Get(ctx context.Context, eventID string) (*dto.EventResponse, error)
	Update(ctx context.Context, eventID, ownerID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, eventID, ownerID string) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *eventService) Create(ctx context.Context, ownerID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	status := model.EventStatusBusy
	if req.Status != "" {
		status = model.EventStatus(req.Status)
		if !status.OwnerSettable() {
			return nil, ErrInvalidEventStatus
		}
	}

	event := &model.Event{
		UserID:    ownerID,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    status,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建时间槽失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	return toEventResponse(event), nil
}

// ────────────────────── List ──────────────────────

func (s *eventService) List(ctx context.Context, ownerID string) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("列出时间槽失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toEventResponse(&events[i]))
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *eventService) Get(ctx context.Context, eventID string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询时间槽失败", zap.String("id", eventID), zap.Error(err))
		return nil, err
	}
	return toEventResponse(event), nil
}

// ────────────────────── Update ──────────────────────

func (s *eventService) Update(ctx context.Context, eventID, ownerID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByIDAndOwner(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询时间槽失败", zap.String("id", eventID), zap.Error(err))
		return nil, err
	}

	changed := false
	if req.Status != nil {
		if event.Status == model.EventStatusSwapPending {
			return nil, ErrEventSwapPending
		}
		status := model.EventStatus(*req.Status)
		if !status.OwnerSettable() {
			return nil, ErrInvalidEventStatus
		}
		event.Status = status
		changed = true
	}
	if req.Title != nil {
		event.Title = *req.Title
		changed = true
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
		changed = true
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
		changed = true
	}

	if !changed {
		return toEventResponse(event), nil
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrEventConflict
		}
		s.logger.Error("更新时间槽失败", zap.String("id", eventID), zap.Error(err))
		return nil, err
	}

	return toEventResponse(event), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除时间槽，即使该槽位正被待处理的换班申请引用也允许删除
func (s *eventService) Delete(ctx context.Context, eventID, ownerID string) error {
	if err := s.repo.Event.Delete(ctx, eventID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("删除时间槽失败", zap.String("id", eventID), zap.Error(err))
		return err
	}
	return nil
}
