package model

// ── 时间槽状态 ──

// EventStatus 时间槽状态
type EventStatus string

const (
	EventStatusBusy        EventStatus = "BUSY"
	EventStatusSwappable   EventStatus = "SWAPPABLE"
	EventStatusSwapPending EventStatus = "SWAP_PENDING"
)

// Valid 是否为已知状态
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusBusy, EventStatusSwappable, EventStatusSwapPending:
		return true
	}
	return false
}

// OwnerSettable 用户可直接设置的状态；SWAP_PENDING 只能由换班流程写入
func (s EventStatus) OwnerSettable() bool {
	switch s {
	case EventStatusBusy, EventStatusSwappable:
		return true
	}
	return false
}

// ── 换班申请状态 ──

// SwapStatus 换班申请状态
//
//	PENDING ──accept──▶ ACCEPTED
//	   └────reject──▶ REJECTED
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusAccepted SwapStatus = "ACCEPTED"
	SwapStatusRejected SwapStatus = "REJECTED"
)

// Valid 是否为已知状态
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected:
		return true
	}
	return false
}

// IsTerminal ACCEPTED 与 REJECTED 为终态
func (s SwapStatus) IsTerminal() bool {
	switch s {
	case SwapStatusAccepted, SwapStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo 状态机合法迁移
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	switch s {
	case SwapStatusPending:
		return next == SwapStatusAccepted || next == SwapStatusRejected
	case SwapStatusAccepted, SwapStatusRejected:
		return false
	}
	return false
}
