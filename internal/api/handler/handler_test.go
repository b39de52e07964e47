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

	"github.com/gin-gonic/gin"

	"sistema-rh/backend/internal/dto"
	"sistema-rh/backend/internal/model"
	"sistema-rh/backend/internal/service"
	"sistema-rh/backend/pkg/jwt"
	"sistema-rh/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock EmployeeService ──

type mockEmployeeService struct {
	createResult *dto.EmployeeResponse
	createErr    error
	getResult    *dto.EmployeeResponse
	getErr       error
	listResult   []dto.EmployeeResponse
	listTotal    int64
	listErr      error
	updateResult *dto.EmployeeResponse
	updateErr    error
	deleteErr    error
}

func (m *mockEmployeeService) Create(_ context.Context, _ service.Actor, _ *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockEmployeeService) GetByID(_ context.Context, _ service.Actor, _ string) (*dto.EmployeeResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockEmployeeService) List(_ context.Context, _ service.Actor, _ *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockEmployeeService) Update(_ context.Context, _ service.Actor, _ string, _ *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockEmployeeService) Delete(_ context.Context, _ service.Actor, _ string) error {
	return m.deleteErr
}

// ── Mock MovementService ──

type mockMovementService struct {
	createResult  *dto.MovementResponse
	createErr     error
	getResult     *dto.MovementResponse
	getErr        error
	listResult    []dto.MovementResponse
	listTotal     int64
	listErr       error
	approveResult *dto.MovementResponse
	approveErr    error
	rejectResult  *dto.MovementResponse
	rejectErr     error
}

func (m *mockMovementService) Create(_ context.Context, _ service.Actor, _ *dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockMovementService) GetByID(_ context.Context, _ service.Actor, _ string) (*dto.MovementResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockMovementService) List(_ context.Context, _ service.Actor, _ *dto.MovementListRequest) ([]dto.MovementResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockMovementService) Approve(_ context.Context, _ service.Actor, _ string) (*dto.MovementResponse, error) {
	return m.approveResult, m.approveErr
}
func (m *mockMovementService) Reject(_ context.Context, _ service.Actor, _ string, _ *dto.RejectMovementRequest) (*dto.MovementResponse, error) {
	return m.rejectResult, m.rejectErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportEmployees(_ context.Context, _ service.Actor) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportMovements(_ context.Context, _ service.Actor) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("tenant_id", "test-tenant-id")
	c.Set("role", "admin")
	c.Set("managed_department_ids", []string{})
	c.Set("claims", &jwt.Claims{UserID: "test-user-id", TenantID: "test-tenant-id", Role: "admin", TokenType: "access"})
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
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@empresa.com",
		Password: "Test1234",
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
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@empresa.com",
		Password: "wrong-password",
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

func TestAuthHandler_Login_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"InvalidCredentials", service.ErrInvalidCredentials, 401, 11001},
		{"UserInactive", service.ErrUserInactive, 401, 11002},
		{"TenantUnavailable", service.ErrTenantUnavailable, 401, 11003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAuthService{loginErr: tt.err}
			h := NewAuthHandler(mock)

			w := setupRecorder()
			req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
				Email:    "admin@empresa.com",
				Password: "Test1234",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/auth/login", h.Login)
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

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	mock := &mockAuthService{refreshErr: service.ErrRefreshInvalid}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale-refresh-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	mock := &mockAuthService{changePassErr: service.ErrWrongOldPassword}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "Old12345",
		NewPassword: "New12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11005 {
		t.Errorf("expected error code 11005, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EmployeeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEmployeeHandler_Create_Success(t *testing.T) {
	mock := &mockEmployeeService{
		createResult: &dto.EmployeeResponse{ID: "emp-1", Name: "若昂"},
	}
	h := NewEmployeeHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/employees", jsonBody(dto.CreateEmployeeRequest{
		Name:          "若昂",
		Email:         "joao@empresa.com",
		CPF:           "529.982.247-25",
		BirthDate:     "1990-05-20",
		DepartmentID:  "11111111-1111-1111-1111-111111111111",
		PositionID:    "22222222-2222-2222-2222-222222222222",
		Salary:        8000,
		AdmissionDate: "2026-01-15",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/employees", func(c *gin.Context) {
		setAuth(c)
		h.CreateEmployee(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestEmployeeHandler_Get_Unauthenticated(t *testing.T) {
	mock := &mockEmployeeService{}
	h := NewEmployeeHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/employees/emp-1", nil)

	r := gin.New()
	r.GET("/employees/:id", h.GetEmployee)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestEmployeeHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrEmployeeNotFound, 404, 15001},
		{"EmailExists", service.ErrEmployeeEmailExists, 409, 15002},
		{"CPFExists", service.ErrEmployeeCPFExists, 409, 15003},
		{"InvalidCPF", service.ErrInvalidCPF, 400, 15004},
		{"PositionMismatch", service.ErrPositionDepartmentMismatch, 400, 15005},
		{"Forbidden", service.ErrForbidden, 403, 10003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockEmployeeService{getErr: tt.err}
			h := NewEmployeeHandler(mock)

			w := setupRecorder()
			req := httptest.NewRequest("GET", "/employees/emp-1", nil)

			r := gin.New()
			r.GET("/employees/:id", func(c *gin.Context) {
				setAuth(c)
				h.GetEmployee(c)
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
// MovementHandler Tests
// ═══════════════════════════════════════════════════════════

func movementCreateBody() io.Reader {
	oldSalary, newSalary := 8000.0, 9500.0
	return jsonBody(dto.CreateMovementRequest{
		EmployeeID:    "33333333-3333-3333-3333-333333333333",
		Type:          model.MovementTypeMerit,
		EffectiveDate: "2026-10-01",
		PreviousValue: model.MovementSnapshot{Salary: &oldSalary},
		NewValue:      model.MovementSnapshot{Salary: &newSalary},
		Reason:        "年度绩效调薪",
	})
}

func TestMovementHandler_Create_Success(t *testing.T) {
	mock := &mockMovementService{
		createResult: &dto.MovementResponse{ID: "mov-1", Status: model.MovementStatusPending},
	}
	h := NewMovementHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/movements", movementCreateBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/movements", func(c *gin.Context) {
		setAuth(c)
		h.CreateMovement(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestMovementHandler_Approve_AlreadyProcessed(t *testing.T) {
	mock := &mockMovementService{approveErr: service.ErrMovementNotPending}
	h := NewMovementHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/movements/mov-1/approve", nil)

	r := gin.New()
	r.POST("/movements/:id/approve", func(c *gin.Context) {
		setAuth(c)
		h.ApproveMovement(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17002 {
		t.Errorf("expected error code 17002, got %d", resp.Code)
	}
}

func TestMovementHandler_Reject_MissingReason(t *testing.T) {
	mock := &mockMovementService{}
	h := NewMovementHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/movements/mov-1/reject", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/movements/:id/reject", func(c *gin.Context) {
		setAuth(c)
		h.RejectMovement(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMovementHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrMovementNotFound, 404, 17001},
		{"NotPending", service.ErrMovementNotPending, 409, 17002},
		{"ValueMissing", service.ErrMovementValueMissing, 400, 17003},
		{"NoChange", service.ErrMovementNoChange, 400, 17004},
		{"Forbidden", service.ErrForbidden, 403, 10003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockMovementService{getErr: tt.err}
			h := NewMovementHandler(mock)

			w := setupRecorder()
			req := httptest.NewRequest("GET", "/movements/mov-1", nil)

			r := gin.New()
			r.GET("/movements/:id", func(c *gin.Context) {
				setAuth(c)
				h.GetMovement(c)
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
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Employees_Success(t *testing.T) {
	buf := bytes.NewBufferString("excel content")
	mock := &mockExportService{
		buf:      buf,
		filename: "funcionarios_20260901.xlsx",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/employees", nil)

	r := gin.New()
	r.GET("/export/employees", func(c *gin.Context) {
		setAuth(c)
		h.ExportEmployees(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_Movements_NoData(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoData}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/movements", nil)

	r := gin.New()
	r.GET("/export/movements", func(c *gin.Context) {
		setAuth(c)
		h.ExportMovements(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18001 {
		t.Errorf("expected error code 18001, got %d", resp.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
