package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"slotswap/internal/model"
	"slotswap/internal/repository"
	pkgerrors "slotswap/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock EventRepository ──
// 行为与 GORM 实现一致：版本号条件更新、按所有者删除

type mockEventRepo struct {
	mu     sync.Mutex
	seq    int
	clock  time.Time
	events map[string]*model.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		events: make(map[string]*model.Event),
	}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("event-%d", m.seq)
	}
	event.CreatedAt = m.clock.Add(time.Duration(m.seq) * time.Second)
	event.UpdatedAt = event.CreatedAt
	event.Version = 1
	cp := *event
	m.events[event.EventID] = &cp
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) GetByIDAndOwner(_ context.Context, id, ownerID string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[id]; ok && e.UserID == ownerID {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Event, error) {
	return m.filter(func(e *model.Event) bool { return e.UserID == ownerID }), nil
}

func (m *mockEventRepo) ListByIDs(_ context.Context, ids []string) ([]model.Event, error) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return m.filter(func(e *model.Event) bool { return set[e.EventID] }), nil
}

func (m *mockEventRepo) ListSwappable(_ context.Context, excludeUserID string) ([]model.Event, error) {
	return m.filter(func(e *model.Event) bool {
		return e.Status == model.EventStatusSwappable && e.UserID != excludeUserID
	}), nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.events[event.EventID]
	if !ok || cur.Version != event.Version {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version++
	cp := *event
	m.events[event.EventID] = &cp
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[id]; ok && e.UserID == ownerID {
		delete(m.events, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockEventRepo) filter(match func(e *model.Event) bool) []model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Event
	for _, e := range m.events {
		if match(e) {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

// get 测试断言用，直接读取存储状态
func (m *mockEventRepo) get(id string) *model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[id]; ok {
		cp := *e
		return &cp
	}
	return nil
}

// ── Mock SwapRequestRepository ──

type mockSwapRequestRepo struct {
	mu    sync.Mutex
	seq   int
	clock time.Time
	reqs  map[string]*model.SwapRequest
}

func newMockSwapRequestRepo() *mockSwapRequestRepo {
	return &mockSwapRequestRepo{
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		reqs:  make(map[string]*model.SwapRequest),
	}
}

func (m *mockSwapRequestRepo) Create(_ context.Context, req *model.SwapRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if req.SwapRequestID == "" {
		req.SwapRequestID = fmt.Sprintf("swap-%d", m.seq)
	}
	req.CreatedAt = m.clock.Add(time.Duration(m.seq) * time.Second)
	req.UpdatedAt = req.CreatedAt
	cp := *req
	m.reqs[req.SwapRequestID] = &cp
	return nil
}

func (m *mockSwapRequestRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reqs[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRequestRepo) ListIncoming(_ context.Context, targetUserID string, status model.SwapStatus) ([]model.SwapRequest, error) {
	return m.filter(func(r *model.SwapRequest) bool {
		return r.TargetUserID == targetUserID && r.Status == status
	}), nil
}

func (m *mockSwapRequestRepo) ListOutgoing(_ context.Context, requesterID string) ([]model.SwapRequest, error) {
	return m.filter(func(r *model.SwapRequest) bool { return r.RequesterID == requesterID }), nil
}

func (m *mockSwapRequestRepo) Transition(_ context.Context, req *model.SwapRequest, from, to model.SwapStatus, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.reqs[req.SwapRequestID]
	if !ok || cur.Status != from {
		return pkgerrors.ErrOptimisticLock
	}
	cur.Status = to
	cur.RespondedAt = &at
	req.Status = to
	req.RespondedAt = &at
	return nil
}

func (m *mockSwapRequestRepo) filter(match func(r *model.SwapRequest) bool) []model.SwapRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.SwapRequest
	for _, r := range m.reqs {
		if match(r) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *mockSwapRequestRepo) all() []model.SwapRequest {
	return m.filter(func(*model.SwapRequest) bool { return true })
}

// ── 测试夹具 ──

type testRepos struct {
	repo   *repository.Repository
	users  *mockUserRepo
	events *mockEventRepo
	swaps  *mockSwapRequestRepo
}

func newTestRepos() *testRepos {
	users := newMockUserRepo()
	events := newMockEventRepo()
	swaps := newMockSwapRequestRepo()
	return &testRepos{
		repo: &repository.Repository{
			User:        users,
			Event:       events,
			SwapRequest: swaps,
		},
		users:  users,
		events: events,
		swaps:  swaps,
	}
}

func (r *testRepos) addUser(id, name, email string) *model.User {
	u := &model.User{UserID: id, Name: name, Email: email, Timezone: "UTC"}
	_ = r.users.Create(context.Background(), u)
	return u
}

func (r *testRepos) addEvent(ownerID, title string, status model.EventStatus) *model.Event {
	e := &model.Event{
		UserID:    ownerID,
		Title:     title,
		StartTime: "2026-03-01T09:00:00Z",
		EndTime:   "2026-03-01T10:00:00Z",
		Status:    status,
	}
	_ = r.events.Create(context.Background(), e)
	return e
}
