package service

import (
	"time"

	"slotswap/internal/dto"
	"slotswap/internal/model"
)

// ── 模型 → 响应 DTO 转换 ──

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Timezone: u.Timezone,
	}
}

func toEventResponse(e *model.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:        e.EventID,
		UserID:    e.UserID,
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Status:    string(e.Status),
		CreatedAt: formatTime(e.CreatedAt),
	}
}

func toSwapRequestResponse(r *model.SwapRequest) *dto.SwapRequestResponse {
	resp := &dto.SwapRequestResponse{
		ID:              r.SwapRequestID,
		RequesterID:     r.RequesterID,
		RequesterSlotID: r.RequesterSlotID,
		TargetSlotID:    r.TargetSlotID,
		TargetUserID:    r.TargetUserID,
		Status:          string(r.Status),
		CreatedAt:       formatTime(r.CreatedAt),
	}
	if r.RespondedAt != nil {
		at := formatTime(*r.RespondedAt)
		resp.RespondedAt = &at
	}
	return resp
}
