package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"slotswap/internal/dto"
	"slotswap/internal/service"
	"slotswap/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testEventID  = "6f1c2b7e-3a4d-4c5e-9f10-1a2b3c4d5e6f"
	testSlotA    = "0d8e6a31-5b2c-4f7a-8e19-2c3d4e5f6a7b"
	testSlotB    = "9a7b6c5d-4e3f-4a1b-8c2d-3e4f5a6b7c8d"
	testSwapID   = "b3c4d5e6-f7a8-4b9c-8d0e-1f2a3b4c5d6e"
	invalidIDArg = "abc"
)

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	signupResult     *dto.TokenResponse
	signupErr        error
	loginResult      *dto.TokenResponse
	loginErr         error
	logoutErr        error
	logoutJTI        string
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
}

func (m *mockAuthService) Signup(_ context.Context, _ *dto.SignupRequest) (*dto.TokenResponse, error) {
	return m.signupResult, m.signupErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock EventService ──

type mockEventService struct {
	createResult *dto.EventResponse
	createErr    error
	listResult   []dto.EventResponse
	listErr      error
	updateResult *dto.EventResponse
	updateErr    error
	updateReq    *dto.UpdateEventRequest
	deleteErr    error
}

func (m *mockEventService) Create(_ context.Context, _ string, _ *dto.CreateEventRequest) (*dto.EventResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockEventService) List(_ context.Context, _ string) ([]dto.EventResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockEventService) Get(_ context.Context, _ string) (*dto.EventResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockEventService) Update(_ context.Context, _, _ string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	m.updateReq = req
	return m.updateResult, m.updateErr
}
func (m *mockEventService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock SwapService ──

type mockSwapService struct {
	proposeResult *dto.SwapRequestResponse
	proposeErr    error
	respondResult *dto.SwapResultResponse
	respondErr    error
	respondAccept *bool
}

func (m *mockSwapService) Propose(_ context.Context, _ string, _ *dto.CreateSwapRequest) (*dto.SwapRequestResponse, error) {
	return m.proposeResult, m.proposeErr
}
func (m *mockSwapService) Respond(_ context.Context, _, _ string, accept bool) (*dto.SwapResultResponse, error) {
	m.respondAccept = &accept
	return m.respondResult, m.respondErr
}

// ── Mock MarketplaceService ──

type mockMarketplaceService struct {
	swappable []dto.SwappableSlotResponse
	incoming  []dto.SwapRequestDetailResponse
	outgoing  []dto.SwapRequestDetailResponse
	err       error
}

func (m *mockMarketplaceService) ListSwappable(_ context.Context, _ string) ([]dto.SwappableSlotResponse, error) {
	return m.swappable, m.err
}
func (m *mockMarketplaceService) Incoming(_ context.Context, _ string) ([]dto.SwapRequestDetailResponse, error) {
	return m.incoming, m.err
}
func (m *mockMarketplaceService) Outgoing(_ context.Context, _ string) ([]dto.SwapRequestDetailResponse, error) {
	return m.outgoing, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf          *bytes.Buffer
	filename     string
	contentType  string
	err          error
	importResult *dto.ImportEventsResponse
	importErr    error
	imported     []byte
}

func (m *mockExportService) ExportEvents(_ context.Context, _, _ string) (*bytes.Buffer, string, string, error) {
	return m.buf, m.filename, m.contentType, m.err
}
func (m *mockExportService) ImportICS(_ context.Context, _ string, r io.Reader) (*dto.ImportEventsResponse, error) {
	m.imported, _ = io.ReadAll(r)
	return m.importResult, m.importErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("token_jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

func withAuth(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		setAuth(c)
		h(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, path, route string, h gin.HandlerFunc, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r := gin.New()
	r.Handle(method, route, h)
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Signup_Success(t *testing.T) {
	mock := &mockAuthService{
		signupResult: &dto.TokenResponse{Token: "t", ExpiresIn: 86400, User: dto.UserResponse{ID: "u1"}},
	}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/signup", "/auth/signup", h.Signup, jsonBody(dto.SignupRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Signup_EmailTaken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{signupErr: service.ErrEmailTaken})

	w := serve("POST", "/auth/signup", "/auth/signup", h.Signup, jsonBody(dto.SignupRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	tests := []struct {
		name string
		body interface{}
	}{
		{"bad email", dto.SignupRequest{Name: "A", Email: "not-an-email", Password: "password123"}},
		{"short password", dto.SignupRequest{Name: "A", Email: "a@example.com", Password: "123"}},
		{"missing name", dto.SignupRequest{Email: "a@example.com", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve("POST", "/auth/signup", "/auth/signup", h.Signup, jsonBody(tt.body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/login", "/auth/login", h.Login, bytes.NewReader([]byte("invalid json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := serve("POST", "/auth/login", "/auth/login", h.Login, jsonBody(dto.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{getCurrentResult: &dto.UserResponse{ID: "test-user-id", Name: "Alice"}})

	w := serve("GET", "/auth/me", "/auth/me", withAuth(h.GetCurrentUser), nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("GET", "/auth/me", "/auth/me", h.GetCurrentUser, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_GetCurrentUser_UserGone(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{getCurrentErr: service.ErrUserNotFound})

	w := serve("GET", "/auth/me", "/auth/me", withAuth(h.GetCurrentUser), nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/logout", "/auth/logout", withAuth(h.Logout), nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutJTI != "test-jti" {
		t.Errorf("expected jti test-jti, got %q", mock.logoutJTI)
	}
}

func TestAuthHandler_Logout_Error(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{logoutErr: errors.New("redis down")})

	w := serve("POST", "/auth/logout", "/auth/logout", withAuth(h.Logout), nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEventHandler_Create_Success(t *testing.T) {
	h := NewEventHandler(&mockEventService{createResult: &dto.EventResponse{ID: "e1", Status: "BUSY"}})

	w := serve("POST", "/events", "/events", withAuth(h.Create), jsonBody(dto.CreateEventRequest{
		Title: "Shift", StartTime: "2026-03-01T09:00:00Z", EndTime: "2026-03-01T10:00:00Z",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestEventHandler_Create_RejectsSwapPendingStatus(t *testing.T) {
	h := NewEventHandler(&mockEventService{})

	w := serve("POST", "/events", "/events", withAuth(h.Create), jsonBody(dto.CreateEventRequest{
		Title: "Shift", StartTime: "a", EndTime: "b", Status: "SWAP_PENDING",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEventHandler_List_Unauthenticated(t *testing.T) {
	h := NewEventHandler(&mockEventService{})

	w := serve("GET", "/events", "/events", h.List, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestEventHandler_Update_PartialBody(t *testing.T) {
	mock := &mockEventService{updateResult: &dto.EventResponse{ID: "e1"}}
	h := NewEventHandler(mock)

	w := serve("PUT", "/events/"+testEventID, "/events/:id", withAuth(h.Update),
		bytes.NewReader([]byte(`{"title":""}`)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.updateReq.Title == nil || *mock.updateReq.Title != "" {
		t.Error("explicit empty title should be passed through")
	}
	if mock.updateReq.Status != nil || mock.updateReq.StartTime != nil {
		t.Error("absent fields should stay nil")
	}
}

func TestEventHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
	}{
		{"not found", service.ErrEventNotFound, http.StatusNotFound, 12101},
		{"swap pending", service.ErrEventSwapPending, http.StatusBadRequest, 12102},
		{"invalid status", service.ErrInvalidEventStatus, http.StatusBadRequest, 12103},
		{"conflict", service.ErrEventConflict, http.StatusConflict, 12104},
		{"internal", errors.New("boom"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewEventHandler(&mockEventService{updateErr: tt.err})
			w := serve("PUT", "/events/"+testEventID, "/events/:id", withAuth(h.Update), jsonBody(map[string]string{"title": "x"}))
			if w.Code != tt.wantHTTP {
				t.Errorf("expected %d, got %d", tt.wantHTTP, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestEventHandler_Delete(t *testing.T) {
	h := NewEventHandler(&mockEventService{})
	w := serve("DELETE", "/events/"+testEventID, "/events/:id", withAuth(h.Delete), nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	h = NewEventHandler(&mockEventService{deleteErr: service.ErrEventNotFound})
	w = serve("DELETE", "/events/"+testEventID, "/events/:id", withAuth(h.Delete), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestEventHandler_Delete_Message(t *testing.T) {
	h := NewEventHandler(&mockEventService{})
	w := serve("DELETE", "/events/"+testEventID, "/events/:id", withAuth(h.Delete), nil)

	var resp struct {
		Data dto.MessageResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Message != "Event deleted successfully" {
		t.Errorf("unexpected message %q", resp.Data.Message)
	}
}

func TestEventHandler_MalformedIDIsNotFound(t *testing.T) {
	tests := []struct {
		name   string
		method string
		h      func(*EventHandler) gin.HandlerFunc
		body   io.Reader
	}{
		{"update", "PUT", func(h *EventHandler) gin.HandlerFunc { return h.Update }, jsonBody(map[string]string{"title": "x"})},
		{"delete", "DELETE", func(h *EventHandler) gin.HandlerFunc { return h.Delete }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 服务若被调用会返回 500，用以确认请求在入口处被拦截
			h := NewEventHandler(&mockEventService{updateErr: errors.New("boom"), deleteErr: errors.New("boom")})
			w := serve(tt.method, "/events/"+invalidIDArg, "/events/:id", withAuth(tt.h(h)), tt.body)
			if w.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", w.Code)
			}
			if resp := parseResponse(w); resp.Code != 12101 {
				t.Errorf("expected code 12101, got %d", resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// SwapHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSwapHandler_Propose_Success(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{proposeResult: &dto.SwapRequestResponse{ID: "s1", Status: "PENDING"}})

	w := serve("POST", "/swap-request", "/swap-request", withAuth(h.Propose), jsonBody(dto.CreateSwapRequest{
		MySlotID: testSlotA, TheirSlotID: testSlotB,
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSwapHandler_Propose_MalformedSlotIDs(t *testing.T) {
	tests := []struct {
		name     string
		mine     string
		theirs   string
		wantCode int
	}{
		{"my slot", invalidIDArg, testSlotB, 13101},
		{"their slot", testSlotA, invalidIDArg, 13102},
		{"both", invalidIDArg, invalidIDArg, 13101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSwapHandler(&mockSwapService{proposeErr: errors.New("boom")})
			w := serve("POST", "/swap-request", "/swap-request", withAuth(h.Propose), jsonBody(dto.CreateSwapRequest{
				MySlotID: tt.mine, TheirSlotID: tt.theirs,
			}))
			if w.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestSwapHandler_Respond_MalformedIDIsNotFound(t *testing.T) {
	mock := &mockSwapService{respondErr: errors.New("boom")}
	h := NewSwapHandler(mock)

	w := serve("POST", "/swap-response/"+invalidIDArg, "/swap-response/:id", withAuth(h.Respond), jsonBody(map[string]bool{"accepted": true}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13105 {
		t.Errorf("expected code 13105, got %d", resp.Code)
	}
	if mock.respondAccept != nil {
		t.Error("service should not be called for a malformed id")
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID(testEventID) {
		t.Error("uuid should be valid")
	}
	for _, id := range []string{"", "abc", "event-1", "6f1c2b7e-3a4d-4c5e-9f10"} {
		if IsValidID(id) {
			t.Errorf("%q should be invalid", id)
		}
	}
}

func TestSwapHandler_Respond_RequiresAccepted(t *testing.T) {
	h := NewSwapHandler(&mockSwapService{})

	w := serve("POST", "/swap-response/"+testSwapID, "/swap-response/:id", withAuth(h.Respond), jsonBody(map[string]string{}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSwapHandler_Respond_FalseIsReject(t *testing.T) {
	mock := &mockSwapService{respondResult: &dto.SwapResultResponse{Message: "Swap rejected", Status: "REJECTED"}}
	h := NewSwapHandler(mock)

	w := serve("POST", "/swap-response/"+testSwapID, "/swap-response/:id", withAuth(h.Respond), jsonBody(map[string]bool{"accepted": false}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.respondAccept == nil || *mock.respondAccept {
		t.Error("accepted=false should be passed as reject")
	}
}

func TestSwapHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
	}{
		{"slot not found", service.ErrSlotNotFound, http.StatusNotFound, 13101},
		{"target slot not found", service.ErrTargetSlotNotFound, http.StatusNotFound, 13102},
		{"slot not swappable", service.ErrSlotNotSwappable, http.StatusBadRequest, 13103},
		{"target not swappable", service.ErrTargetSlotNotSwappable, http.StatusBadRequest, 13104},
		{"swap not found", service.ErrSwapNotFound, http.StatusNotFound, 13105},
		{"forbidden", service.ErrSwapForbidden, http.StatusForbidden, 13106},
		{"already processed", service.ErrSwapAlreadyProcessed, http.StatusBadRequest, 13107},
		{"conflict", service.ErrSwapConflict, http.StatusConflict, 13108},
		{"internal", errors.New("boom"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSwapHandler(&mockSwapService{respondErr: tt.err})
			w := serve("POST", "/swap-response/"+testSwapID, "/swap-response/:id", withAuth(h.Respond), jsonBody(map[string]bool{"accepted": true}))
			if w.Code != tt.wantHTTP {
				t.Errorf("expected %d, got %d", tt.wantHTTP, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// MarketplaceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMarketplaceHandler_Lists(t *testing.T) {
	mock := &mockMarketplaceService{
		swappable: []dto.SwappableSlotResponse{{UserName: "Bob"}},
		incoming:  []dto.SwapRequestDetailResponse{},
		outgoing:  []dto.SwapRequestDetailResponse{},
	}
	h := NewMarketplaceHandler(mock)

	for path, fn := range map[string]gin.HandlerFunc{
		"/swappable-slots":        h.SwappableSlots,
		"/swap-requests/incoming": h.Incoming,
		"/swap-requests/outgoing": h.Outgoing,
	} {
		w := serve("GET", path, path, withAuth(fn), nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		if w := serve("GET", path, path, fn, nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without auth, got %d", path, w.Code)
		}
	}
}

func TestMarketplaceHandler_EmptyListIsArray(t *testing.T) {
	h := NewMarketplaceHandler(&mockMarketplaceService{swappable: []dto.SwappableSlotResponse{}})

	w := serve("GET", "/swappable-slots", "/swappable-slots", withAuth(h.SwappableSlots), nil)

	if !bytes.Contains(w.Body.Bytes(), []byte(`"data":[]`)) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:         bytes.NewBufferString("BEGIN:VCALENDAR"),
		filename:    "slots.ics",
		contentType: "text/calendar; charset=utf-8",
	}
	h := NewExportHandler(mock)

	w := serve("GET", "/events/export?format=ics", "/events/export", withAuth(h.Export), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_BadFormat(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := serve("GET", "/events/export?format=pdf", "/events/export", withAuth(h.Export), nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_Import(t *testing.T) {
	mock := &mockExportService{importResult: &dto.ImportEventsResponse{Imported: 1}}
	h := NewExportHandler(mock)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, _ := mw.CreateFormFile("file", "cal.ics")
	part.Write([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events/import", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r := gin.New()
	r.POST("/events/import", withAuth(h.Import))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.HasPrefix(mock.imported, []byte("BEGIN:VCALENDAR")) {
		t.Errorf("uploaded content not forwarded: %q", mock.imported)
	}
}

func TestExportHandler_ImportMissingFile(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := serve("POST", "/events/import", "/events/import", withAuth(h.Import), nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ImportTooLarge(t *testing.T) {
	h := NewExportHandler(&mockExportService{importErr: service.ErrImportTooLarge})

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, _ := mw.CreateFormFile("file", "cal.ics")
	part.Write([]byte("x"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events/import", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r := gin.New()
	r.POST("/events/import", withAuth(h.Import))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}
