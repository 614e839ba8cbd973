package repository

import (
	"context"

	"gorm.io/gorm"

	"slotswap/internal/model"
	pkgerrors "slotswap/pkg/errors"
)

// EventRepository 时间槽数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Event, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Event, error)
	ListSwappable(ctx context.Context, excludeUserID string) ([]model.Event, error)
	// Update 乐观锁更新，版本不匹配（或记录已删除）时返回 pkgerrors.ErrOptimisticLock
	Update(ctx context.Context, event *model.Event) error
	// Delete 删除属于 ownerID 的时间槽，不存在时返回 gorm.ErrRecordNotFound
	Delete(ctx context.Context, id, ownerID string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", id, ownerID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	var events []model.Event
	if len(ids) == 0 {
		return events, nil
	}
	err := r.db.WithContext(ctx).
		Where("event_id IN ?", ids).
		Find(&events).Error
	return events, err
}

func (r *eventRepo) ListSwappable(ctx context.Context, excludeUserID string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("status = ? AND user_id <> ?", model.EventStatusSwappable, excludeUserID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	oldVersion := event.Version
	result := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ? AND version = ?", event.EventID, oldVersion).
		Updates(map[string]interface{}{
			"user_id":    event.UserID,
			"title":      event.Title,
			"start_time": event.StartTime,
			"end_time":   event.EndTime,
			"status":     event.Status,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version = oldVersion + 1
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id, ownerID string) error {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
