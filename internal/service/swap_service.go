package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotswap/internal/dto"
	"slotswap/internal/model"
	"slotswap/internal/repository"
	pkgerrors "slotswap/pkg/errors"
)

// ── 换班模块业务错误 ──

var (
	ErrSlotNotFound           = errors.New("我的时间槽不存在")
	ErrTargetSlotNotFound     = errors.New("对方的时间槽不存在")
	ErrSlotNotSwappable       = errors.New("我的时间槽不可交换")
	ErrTargetSlotNotSwappable = errors.New("对方的时间槽不可交换")
	ErrSwapNotFound           = errors.New("换班申请不存在")
	ErrSwapForbidden          = errors.New("无权处理该换班申请")
	ErrSwapAlreadyProcessed   = errors.New("换班申请已处理")
	ErrSwapConflict           = errors.New("时间槽已被其他换班操作修改，请刷新后重试")
)

const (
	swapAcceptedMessage = "Swap accepted successfully"
	swapRejectedMessage = "Swap rejected"
)

// SwapService 换班业务接口
//
// 状态机：
//
//	[none] ──Propose──▶ PENDING ──accept──▶ ACCEPTED
//	                       └──────reject──▶ REJECTED
//
// 时间槽的 SWAP_PENDING 状态与槽位所有权只由本服务写入。
// 每次迁移在同一事务内完成，槽位写入使用版本号条件更新，申请状态使用状态条件更新。
type SwapService interface {
	Propose(ctx context.Context, requesterID string, req *dto.CreateSwapRequest) (*dto.SwapRequestResponse, error)
	Respond(ctx context.Context, requestID, callerID string, accept bool) (*dto.SwapResultResponse, error)
}

type swapService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(repo *repository.Repository, logger *zap.Logger) SwapService {
	return &swapService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ────────────────────── Propose ──────────────────────

// Propose 发起换班
// 不校验两个槽位是否相同或属于同一用户
func (s *swapService) Propose(ctx context.Context, requesterID string, req *dto.CreateSwapRequest) (*dto.SwapRequestResponse, error) {
	var created *model.SwapRequest

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 1. 我的槽位：必须存在且属于发起人
		mySlot, err := tx.Event.GetByIDAndOwner(ctx, req.MySlotID, requesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		// 2. 对方槽位
		theirSlot := mySlot
		if req.TheirSlotID != req.MySlotID {
			theirSlot, err = tx.Event.GetByID(ctx, req.TheirSlotID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTargetSlotNotFound
				}
				return err
			}
		}

		// 3. 双方都必须是 SWAPPABLE
		if mySlot.Status != model.EventStatusSwappable {
			return ErrSlotNotSwappable
		}
		if theirSlot.Status != model.EventStatusSwappable {
			return ErrTargetSlotNotSwappable
		}

		// 4. 锁定槽位，先写对方槽位
		for _, slot := range distinctSlots(theirSlot, mySlot) {
			slot.Status = model.EventStatusSwapPending
			if err := tx.Event.Update(ctx, slot); err != nil {
				return err
			}
		}

		// 5. 创建申请，目标用户取此刻对方槽位的所有者
		created = &model.SwapRequest{
			RequesterID:     requesterID,
			RequesterSlotID: mySlot.EventID,
			TargetSlotID:    theirSlot.EventID,
			TargetUserID:    theirSlot.UserID,
			Status:          model.SwapStatusPending,
		}
		return tx.SwapRequest.Create(ctx, created)
	})
	if err != nil {
		return nil, s.mapError(err, "发起换班失败", zap.String("requester_id", requesterID))
	}

	s.logger.Info("换班申请已创建",
		zap.String("swap_request_id", created.SwapRequestID),
		zap.String("requester_id", requesterID),
		zap.String("target_user_id", created.TargetUserID),
	)

	return toSwapRequestResponse(created), nil
}

// ────────────────────── Respond ──────────────────────

// Respond 目标用户接受或拒绝换班申请
//
// 接受时若任一槽位已被删除则返回 NotFound，申请保持 PENDING；
// 拒绝时跳过已删除的槽位。
func (s *swapService) Respond(ctx context.Context, requestID, callerID string, accept bool) (*dto.SwapResultResponse, error) {
	var result *model.SwapRequest

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		req, err := tx.SwapRequest.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapNotFound
			}
			return err
		}
		if req.TargetUserID != callerID {
			return ErrSwapForbidden
		}
		next := model.SwapStatusRejected
		if accept {
			next = model.SwapStatusAccepted
		}
		if !req.Status.CanTransitionTo(next) {
			return ErrSwapAlreadyProcessed
		}

		if accept {
			err = s.accept(ctx, tx, req)
		} else {
			err = s.reject(ctx, tx, req)
		}
		if err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, s.mapError(err, "处理换班申请失败", zap.String("swap_request_id", requestID))
	}

	s.logger.Info("换班申请已处理",
		zap.String("swap_request_id", requestID),
		zap.String("status", string(result.Status)),
	)

	msg := swapRejectedMessage
	if result.Status == model.SwapStatusAccepted {
		msg = swapAcceptedMessage
	}
	return &dto.SwapResultResponse{Message: msg, Status: string(result.Status)}, nil
}

// accept 交换两个槽位的所有者并恢复为 BUSY
func (s *swapService) accept(ctx context.Context, tx *repository.Repository, req *model.SwapRequest) error {
	// 1. 重新读取双方槽位，任一缺失即失败，申请不变
	reqSlot, err := tx.Event.GetByID(ctx, req.RequesterSlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return err
	}
	tgtSlot := reqSlot
	if req.TargetSlotID != req.RequesterSlotID {
		tgtSlot, err = tx.Event.GetByID(ctx, req.TargetSlotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetSlotNotFound
			}
			return err
		}
	}

	// 2. 先迁移申请状态，并发响应中只有一方能通过
	if err := tx.SwapRequest.Transition(ctx, req, model.SwapStatusPending, model.SwapStatusAccepted, s.now()); err != nil {
		return transitionError(err)
	}

	// 3. 交换所有者
	reqSlot.UserID, tgtSlot.UserID = tgtSlot.UserID, reqSlot.UserID
	for _, slot := range distinctSlots(reqSlot, tgtSlot) {
		slot.Status = model.EventStatusBusy
		if err := tx.Event.Update(ctx, slot); err != nil {
			return err
		}
	}
	return nil
}

// reject 将仍存在的槽位恢复为 SWAPPABLE，不修改所有者
func (s *swapService) reject(ctx context.Context, tx *repository.Repository, req *model.SwapRequest) error {
	if err := tx.SwapRequest.Transition(ctx, req, model.SwapStatusPending, model.SwapStatusRejected, s.now()); err != nil {
		return transitionError(err)
	}

	for _, id := range req.SlotIDs() {
		slot, err := tx.Event.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		slot.Status = model.EventStatusSwappable
		if err := tx.Event.Update(ctx, slot); err != nil {
			return err
		}
	}
	return nil
}

// ── 内部辅助方法 ──

// mapError 将仓储层错误转换为业务错误，未知错误记录日志后原样返回
func (s *swapService) mapError(err error, msg string, fields ...zap.Field) error {
	switch {
	case errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrTargetSlotNotFound),
		errors.Is(err, ErrSlotNotSwappable),
		errors.Is(err, ErrTargetSlotNotSwappable),
		errors.Is(err, ErrSwapNotFound),
		errors.Is(err, ErrSwapForbidden),
		errors.Is(err, ErrSwapAlreadyProcessed):
		return err
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		s.logger.Warn(msg, append(fields, zap.Error(err))...)
		return ErrSwapConflict
	}
	s.logger.Error(msg, append(fields, zap.Error(err))...)
	return err
}

// transitionError 申请状态条件更新落空说明已被并发处理
func transitionError(err error) error {
	if errors.Is(err, pkgerrors.ErrOptimisticLock) {
		return ErrSwapAlreadyProcessed
	}
	return err
}

// distinctSlots 自换时两个指针相同，只返回一个
func distinctSlots(a, b *model.Event) []*model.Event {
	if a == b || a.EventID == b.EventID {
		return []*model.Event{a}
	}
	return []*model.Event{a, b}
}
