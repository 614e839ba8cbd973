package dto

// ── 时间槽模块 DTO ──

// CreateEventRequest 创建时间槽请求
// 时间字段原样保存，不做格式与先后校验
type CreateEventRequest struct {
	Title     string `json:"title"      binding:"required,max=200"`
	StartTime string `json:"start_time" binding:"required,max=64"`
	EndTime   string `json:"end_time"   binding:"required,max=64"`
	Status    string `json:"status"     binding:"omitempty,oneof=BUSY SWAPPABLE"`
}

// UpdateEventRequest 更新时间槽请求（部分更新，nil 表示不修改）
type UpdateEventRequest struct {
	Title     *string `json:"title"      binding:"omitempty,max=200"`
	StartTime *string `json:"start_time" binding:"omitempty,max=64"`
	EndTime   *string `json:"end_time"   binding:"omitempty,max=64"`
	Status    *string `json:"status"     binding:"omitempty,oneof=BUSY SWAPPABLE"`
}

// EventResponse 时间槽信息响应
type EventResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// SwappableSlotResponse 市场列表中的时间槽（附带所有者信息）
type SwappableSlotResponse struct {
	EventResponse
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// ImportEventsResponse ICS 导入结果
type ImportEventsResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ExportEventsRequest 导出参数
type ExportEventsRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=ics xlsx"`
}
