package model

import "time"

// SwapRequest 换班申请表，对应 swap_requests
// TargetUserID 在创建时从目标槽位的所有者复制而来，之后即使槽位易主也不变
type SwapRequest struct {
	SwapRequestID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequesterID     string     `gorm:"type:uuid;not null;index"                       json:"requester_id"`
	RequesterSlotID string     `gorm:"type:uuid;not null"                             json:"requester_slot_id"`
	TargetSlotID    string     `gorm:"type:uuid;not null"                             json:"target_slot_id"`
	TargetUserID    string     `gorm:"type:uuid;not null"                             json:"target_user_id"`
	Status          SwapStatus `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (SwapRequest) TableName() string { return "swap_requests" }

// SlotIDs 申请涉及的槽位 ID（去重，自换时仅一个）
func (r *SwapRequest) SlotIDs() []string {
	if r.RequesterSlotID == r.TargetSlotID {
		return []string{r.RequesterSlotID}
	}
	return []string{r.RequesterSlotID, r.TargetSlotID}
}

// [自证通过] internal/model/swap_request.go
