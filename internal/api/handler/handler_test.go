package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"rollcall/config"
	"rollcall/internal/dto"
	"rollcall/internal/model"
	"rollcall/internal/service"
	"rollcall/pkg/jwt"
	"rollcall/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string, _ model.Role) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	createResult *dto.AttendanceResponse
	createErr    error
	getResult    *dto.AttendanceResponse
	getErr       error
	listResult   []dto.AttendanceResponse
	listErr      error
	updateResult *dto.AttendanceResponse
	updateErr    error
	deleteErr    error
}

func (m *mockAttendanceService) Create(_ context.Context, _ *dto.CreateAttendanceRequest, _ string, _ model.Role) (*dto.AttendanceResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAttendanceService) GetByID(_ context.Context, _ string) (*dto.AttendanceResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockAttendanceService) List(_ context.Context, _ *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockAttendanceService) Update(_ context.Context, _ string, _ *dto.UpdateAttendanceRequest, _ string, _ model.Role) (*dto.AttendanceResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockAttendanceService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock ReportService ──

type mockReportService struct {
	workHoursResult  []dto.TeacherWorkHoursRow
	workHoursErr     error
	attendanceResult []dto.StudentAttendanceRow
	attendanceErr    error
}

func (m *mockReportService) TeacherWorkHours(_ context.Context, _ *dto.TeacherWorkHoursRequest) ([]dto.TeacherWorkHoursRow, error) {
	return m.workHoursResult, m.workHoursErr
}
func (m *mockReportService) StudentAttendance(_ context.Context, _ *dto.StudentAttendanceRequest) ([]dto.StudentAttendanceRow, error) {
	return m.attendanceResult, m.attendanceErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportReports(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "handler-test-secret-0123456789",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
			Cookie: config.CookieConfig{
				Secure:   false,
				SameSite: "Lax",
			},
		},
	}
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("jwt_claims", &jwt.Claims{
		UserID:    "test-user-id",
		Role:      "admin",
		TokenType: "access",
	})
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

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
			User:         dto.UserResponse{ID: "admin-1", Role: "admin"},
		},
	}
	h := NewAuthHandler(mock, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@school.cn",
		Password: "password123",
		Role:     "admin",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	// 验证 Set-Cookie 头：access_token 与 refresh_token 均应写入
	var foundAccess, foundRefresh bool
	for _, ck := range w.Result().Cookies() {
		switch ck.Name {
		case "access_token":
			foundAccess = true
			if !ck.HttpOnly {
				t.Error("access_token cookie 应为 HttpOnly")
			}
		case "refresh_token":
			foundRefresh = true
			if ck.Path != "/api/v1/auth" {
				t.Errorf("refresh_token cookie path 期望 /api/v1/auth，实际=%s", ck.Path)
			}
		}
	}
	if !foundAccess || !foundRefresh {
		t.Errorf("期望写入两个 cookie，access=%v refresh=%v", foundAccess, foundRefresh)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidRole(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@school.cn",
		Password: "password123",
		Role:     "student", // 不在 oneof=admin teacher 内
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@school.cn",
		Password: "wrong",
		Role:     "admin",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	mock := &mockAuthService{
		refreshResult: &dto.TokenResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_ClearsCookies(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	// 验证 Cookie 被清除（max-age < 0）
	for _, ck := range w.Result().Cookies() {
		if (ck.Name == "access_token" || ck.Name == "refresh_token") && ck.MaxAge >= 0 {
			t.Errorf("期望 %s cookie 被清除", ck.Name)
		}
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mock := &mockAuthService{
		getCurrentResult: &dto.UserResponse{ID: "test-user-id", Name: "管理员", Role: "admin"},
	}
	h := NewAuthHandler(mock, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_Create_Success(t *testing.T) {
	mock := &mockAttendanceService{
		createResult: &dto.AttendanceResponse{
			ID:            "record-1",
			Date:          "2026-03-02",
			DurationHours: 1.5,
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.CreateAttendanceRequest{
		Date:      "2026-03-02",
		SessionID: "22222222-2222-2222-2222-222222222222",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", func(c *gin.Context) {
		setAuth(c)
		h.CreateAttendance(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAttendanceHandler_Create_BadDate(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.CreateAttendanceRequest{
		Date:      "03/02/2026", // 非 YYYY-MM-DD
		SessionID: "22222222-2222-2222-2222-222222222222",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", func(c *gin.Context) {
		setAuth(c)
		h.CreateAttendance(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_List_Success(t *testing.T) {
	mock := &mockAttendanceService{
		listResult: []dto.AttendanceResponse{{ID: "record-1"}, {ID: "record-2"}},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance?start_date=2026-03-01&end_date=2026-03-31", nil)

	r := gin.New()
	r.GET("/attendance", h.ListAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAttendanceHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrAttendanceNotFound, 404, 17001},
		{"AlreadyMarked", service.ErrAttendanceAlreadyMarked, 400, 17002},
		{"DateOutsideRange", service.ErrDateOutsideSessionRange, 400, 17003},
		{"StudentNotEnrolled", service.ErrStudentNotEnrolled, 400, 17004},
		{"NotSessionOwner", service.ErrNotSessionOwner, 403, 17005},
		{"ActualTimeInvalid", service.ErrActualTimeInvalid, 400, 17006},
		{"SessionNotFound", service.ErrSessionNotFound, 404, 16001},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAttendanceService{createErr: tt.err}
			h := NewAttendanceHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.CreateAttendanceRequest{
				Date:      "2026-03-02",
				SessionID: "22222222-2222-2222-2222-222222222222",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/attendance", func(c *gin.Context) {
				setAuth(c)
				h.CreateAttendance(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_TeacherWorkHours_Success(t *testing.T) {
	mock := &mockReportService{
		workHoursResult: []dto.TeacherWorkHoursRow{
			{TeacherID: "t1", TeacherName: "张老师", Hours: 3.5},
		},
	}
	h := NewReportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/work-hours?start_date=2026-03-01&end_date=2026-03-31", nil)

	r := gin.New()
	r.GET("/reports/work-hours", h.TeacherWorkHours)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestReportHandler_StudentAttendance_StudentNotFound(t *testing.T) {
	mock := &mockReportService{attendanceErr: service.ErrStudentNotFound}
	h := NewReportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/attendance?student_id=22222222-2222-2222-2222-222222222222", nil)

	r := gin.New()
	r.GET("/reports/attendance", h.StudentAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected code 15001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "考勤报表_2026-03-01_2026-03-31.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/reports?start_date=2026-03-01&end_date=2026-03-31", nil)

	r := gin.New()
	r.GET("/export/reports", h.ExportReports)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_GenerateFail(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportGenerateFail}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/reports", nil)

	r := gin.New()
	r.GET("/export/reports", h.ExportReports)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
