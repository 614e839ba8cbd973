package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"slotswap/internal/model"
	pkgerrors "slotswap/pkg/errors"
)

// SwapRequestRepository 换班申请数据访问接口
// 换班申请只追加不删除
type SwapRequestRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	ListIncoming(ctx context.Context, targetUserID string, status model.SwapStatus) ([]model.SwapRequest, error)
	ListOutgoing(ctx context.Context, requesterID string) ([]model.SwapRequest, error)
	// Transition 条件更新状态：仅当当前状态为 from 时生效，否则返回 pkgerrors.ErrOptimisticLock
	Transition(ctx context.Context, req *model.SwapRequest, from, to model.SwapStatus, at time.Time) error
}

type swapRequestRepo struct {
	db *gorm.DB
}

// NewSwapRequestRepo 创建 SwapRequestRepository 实例
func NewSwapRequestRepo(db *gorm.DB) SwapRequestRepository {
	return &swapRequestRepo{db: db}
}

func (r *swapRequestRepo) Create(ctx context.Context, req *model.SwapRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *swapRequestRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Where("swap_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRequestRepo) ListIncoming(ctx context.Context, targetUserID string, status model.SwapStatus) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.db.WithContext(ctx).
		Where("target_user_id = ? AND status = ?", targetUserID, status).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *swapRequestRepo) ListOutgoing(ctx context.Context, requesterID string) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *swapRequestRepo) Transition(ctx context.Context, req *model.SwapRequest, from, to model.SwapStatus, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND status = ?", req.SwapRequestID, from).
		Updates(map[string]interface{}{
			"status":       to,
			"responded_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Status = to
	req.RespondedAt = &at
	return nil
}
