package dto

// ── 换班模块 DTO ──

// CreateSwapRequest 发起换班请求
type CreateSwapRequest struct {
	MySlotID    string `json:"my_slot_id"    binding:"required"`
	TheirSlotID string `json:"their_slot_id" binding:"required"`
}

// SwapResponseRequest 响应换班请求
// Accepted 使用指针以区分 false 与缺省
type SwapResponseRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// SwapRequestResponse 换班申请信息
type SwapRequestResponse struct {
	ID              string  `json:"id"`
	RequesterID     string  `json:"requester_id"`
	RequesterSlotID string  `json:"requester_slot_id"`
	TargetSlotID    string  `json:"target_slot_id"`
	TargetUserID    string  `json:"target_user_id"`
	Status          string  `json:"status"`
	RespondedAt     *string `json:"responded_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// SwapRequestDetailResponse 收到/发出的换班申请（附带对方与槽位信息）
// 对方用户或槽位已不存在时对应字段省略
type SwapRequestDetailResponse struct {
	SwapRequestResponse
	RequesterName   string         `json:"requester_name,omitempty"`
	RequesterEmail  string         `json:"requester_email,omitempty"`
	TargetUserName  string         `json:"target_user_name,omitempty"`
	TargetUserEmail string         `json:"target_user_email,omitempty"`
	RequesterSlot   *EventResponse `json:"requester_slot,omitempty"`
	TargetSlot      *EventResponse `json:"target_slot,omitempty"`
}

// SwapResultResponse 响应换班后的结果
type SwapResultResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// MessageResponse 简单消息响应
type MessageResponse struct {
	Message string `json:"message"`
}
