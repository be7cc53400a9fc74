package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// モックサービス
// ═══════════════════════════════════════════════════════════

type mockAuthService struct {
	loginResult       *dto.TokenResponse
	loginErr          error
	refreshResult     *dto.TokenResponse
	refreshErr        error
	changePasswordErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}

func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}

func (m *mockAuthService) ChangePassword(_ context.Context, _ uint, _ *dto.ChangePasswordRequest) error {
	return m.changePasswordErr
}

type mockReportService struct {
	createResult   *model.Report
	createWarnings []service.SyncWarning
	createErr      error
	getResult      *model.Report
	getErr         error
	listResult     []model.Report
	listTotal      int64
	listErr        error
	updateResult   *model.Report
	updateWarnings []service.SyncWarning
	updateErr      error
	deleteWarnings []service.SyncWarning
	deleteErr      error
	descriptions   []string
}

func (m *mockReportService) Create(_ context.Context, _ *dto.CreateReportRequest) (*model.Report, []service.SyncWarning, error) {
	return m.createResult, m.createWarnings, m.createErr
}

func (m *mockReportService) Get(_ context.Context, _ uint) (*model.Report, error) {
	return m.getResult, m.getErr
}

func (m *mockReportService) List(_ context.Context, _ *dto.ReportListRequest) ([]model.Report, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockReportService) Update(_ context.Context, _ uint, _ *dto.UpdateReportRequest) (*model.Report, []service.SyncWarning, error) {
	return m.updateResult, m.updateWarnings, m.updateErr
}

func (m *mockReportService) Delete(_ context.Context, _ uint) ([]service.SyncWarning, error) {
	return m.deleteWarnings, m.deleteErr
}

func (m *mockReportService) ListDescriptions(_ context.Context, _ int) ([]string, error) {
	return m.descriptions, nil
}

type mockPDFService struct {
	data      []byte
	savedPath string
	err       error
	filename  string
}

func (m *mockPDFService) GenerateReportPDF(_ context.Context, _ uint, _ bool) ([]byte, string, error) {
	return m.data, m.savedPath, m.err
}

func (m *mockPDFService) DownloadFilename(_ *model.Report) string {
	return m.filename
}

type mockScheduleService struct {
	createResult   *model.Schedule
	createErr      error
	getResult      *model.Schedule
	getErr         error
	listResult     []model.Schedule
	listTotal      int64
	listErr        error
	updateResult   *model.Schedule
	updateErr      error
	moveResult     *model.Schedule
	moveErr        error
	completeResult *model.Schedule
	completeErr    error
	deleteErr      error
	events         []dto.EventResponse
	eventsErr      error
	icsData        []byte
	icsErr         error
}

func (m *mockScheduleService) Create(_ context.Context, _ *dto.CreateScheduleRequest, _ *uint) (*model.Schedule, error) {
	return m.createResult, m.createErr
}

func (m *mockScheduleService) Get(_ context.Context, _ uint) (*model.Schedule, error) {
	return m.getResult, m.getErr
}

func (m *mockScheduleService) List(_ context.Context, _ *dto.ScheduleListRequest) ([]model.Schedule, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockScheduleService) Update(_ context.Context, _ uint, _ *dto.UpdateScheduleRequest) (*model.Schedule, error) {
	return m.updateResult, m.updateErr
}

func (m *mockScheduleService) Move(_ context.Context, _ *dto.MoveScheduleRequest) (*model.Schedule, error) {
	return m.moveResult, m.moveErr
}

func (m *mockScheduleService) Complete(_ context.Context, _ uint) (*model.Schedule, error) {
	return m.completeResult, m.completeErr
}

func (m *mockScheduleService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

func (m *mockScheduleService) Events(_ context.Context, _ *dto.EventsRequest) ([]dto.EventResponse, error) {
	return m.events, m.eventsErr
}

func (m *mockScheduleService) ExportICS(_ context.Context, _, _ time.Time) ([]byte, error) {
	return m.icsData, m.icsErr
}

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportOrderDetails(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// テスト補助
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("応答の JSON 解析に失敗: %v", err)
	}
	return resp
}

// authAs JWT ミドルウェアの代わりに user_id / role を注入する
func authAs(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "tanaka",
		Password: "password123",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("コード 0 を期待したが %d", resp.Code)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data がオブジェクトではない: %T", resp.Data)
	}
	if data["access_token"] != "test-access-token" {
		t.Errorf("access_token が一致しない: %v", data["access_token"])
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", bytes.NewReader([]byte("invalid json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("ステータス 400 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 10001 {
		t.Errorf("コード 10001 を期待したが %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "tanaka",
		Password: "wrong",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("ステータス 401 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 11001 {
		t.Errorf("コード 11001 を期待したが %d", resp.Code)
	}
}

func TestAuthHandler_Login_InactiveUser(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrUserInactive}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "suzuki",
		Password: "password123",
	}))

	if w.Code != http.StatusForbidden {
		t.Errorf("ステータス 403 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 11002 {
		t.Errorf("コード 11002 を期待したが %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		refreshResult: &dto.TokenResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			ExpiresIn:    900,
		},
	}, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := doJSON(r, "POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "old-refresh",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := doJSON(r, "POST", "/auth/refresh", jsonBody(map[string]string{}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("ステータス 400 を期待したが %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: errors.New("expired")}, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := doJSON(r, "POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("ステータス 401 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 11003 {
		t.Errorf("コード 11003 を期待したが %d", resp.Code)
	}
}

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.POST("/auth/password", authAs(1, model.RoleAdmin), h.ChangePassword)
	w := doJSON(r, "POST", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	// 認証ミドルウェアなし
	r := gin.New()
	r.POST("/auth/password", h.ChangePassword)
	w := doJSON(r, "POST", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("ステータス 401 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 10002 {
		t.Errorf("コード 10002 を期待したが %d", resp.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePasswordErr: service.ErrWrongPassword}, nil)

	r := gin.New()
	r.POST("/auth/password", authAs(1, model.RoleAdmin), h.ChangePassword)
	w := doJSON(r, "POST", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword456",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("ステータス 400 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 11004 {
		t.Errorf("コード 11004 を期待したが %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler
// ═══════════════════════════════════════════════════════════

func TestReportHandler_Create_IncludesSyncWarnings(t *testing.T) {
	report := &model.Report{PropertyID: 7, Title: "作業完了書", Status: "draft"}
	report.ID = 42
	mock := &mockReportService{
		createResult: report,
		createWarnings: []service.SyncWarning{
			{Index: 0, Field: "work_date", Message: "作業日の形式が不正です"},
		},
	}
	h := NewReportHandler(mock, &mockPDFService{})

	r := gin.New()
	r.POST("/reports", h.Create)
	w := doJSON(r, "POST", "/reports", jsonBody(dto.CreateReportRequest{PropertyID: 7}))

	if w.Code != http.StatusCreated {
		t.Errorf("ステータス 201 を期待したが %d", w.Code)
	}
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data がオブジェクトではない: %T", resp.Data)
	}
	warnings, ok := data["sync_warnings"].([]interface{})
	if !ok {
		t.Fatalf("sync_warnings が配列ではない: %T", data["sync_warnings"])
	}
	if len(warnings) != 1 {
		t.Errorf("警告 1 件を期待したが %d 件", len(warnings))
	}
	if _, ok := data["report"]; !ok {
		t.Error("report キーが応答にない")
	}
}

func TestReportHandler_Create_PropertyNotFound(t *testing.T) {
	h := NewReportHandler(&mockReportService{createErr: service.ErrPropertyNotFound}, &mockPDFService{})

	r := gin.New()
	r.POST("/reports", h.Create)
	w := doJSON(r, "POST", "/reports", jsonBody(dto.CreateReportRequest{PropertyID: 999}))

	if w.Code != http.StatusNotFound {
		t.Errorf("ステータス 404 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 22001 {
		t.Errorf("コード 22001 を期待したが %d", resp.Code)
	}
}

func TestReportHandler_Get_NotFound(t *testing.T) {
	h := NewReportHandler(&mockReportService{getErr: service.ErrReportNotFound}, &mockPDFService{})

	r := gin.New()
	r.GET("/reports/:id", h.Get)
	w := doJSON(r, "GET", "/reports/999", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("ステータス 404 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 25001 {
		t.Errorf("コード 25001 を期待したが %d", resp.Code)
	}
}

func TestReportHandler_Get_InvalidID(t *testing.T) {
	h := NewReportHandler(&mockReportService{}, &mockPDFService{})

	r := gin.New()
	r.GET("/reports/:id", h.Get)
	w := doJSON(r, "GET", "/reports/abc", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("ステータス 400 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 10001 {
		t.Errorf("コード 10001 を期待したが %d", resp.Code)
	}
}

func TestReportHandler_Delete_ReturnsSyncWarnings(t *testing.T) {
	mock := &mockReportService{
		deleteWarnings: []service.SyncWarning{
			{Index: -1, Field: "schedule", Message: "スケジュールの切り離しに失敗しました"},
		},
	}
	h := NewReportHandler(mock, &mockPDFService{})

	r := gin.New()
	r.DELETE("/reports/:id", h.Delete)
	w := doJSON(r, "DELETE", "/reports/42", nil)

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data がオブジェクトではない: %T", resp.Data)
	}
	if _, ok := data["sync_warnings"]; !ok {
		t.Error("sync_warnings キーが応答にない")
	}
}

func TestReportHandler_DownloadPDF(t *testing.T) {
	report := &model.Report{PropertyID: 7, Title: "作業完了書"}
	report.ID = 42
	pdfMock := &mockPDFService{
		data:     []byte("%PDF-1.4 fake"),
		filename: "作業完了報告書_田中_田中様邸_20250601.pdf",
	}
	h := NewReportHandler(&mockReportService{getResult: report}, pdfMock)

	r := gin.New()
	r.GET("/reports/:id/pdf", h.DownloadPDF)
	w := doJSON(r, "GET", "/reports/42/pdf", nil)

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type が application/pdf ではない: %s", ct)
	}
	disp := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disp, "attachment; filename*=UTF-8''") {
		t.Errorf("Content-Disposition の形式が不正: %s", disp)
	}
	if !bytes.Equal(w.Body.Bytes(), pdfMock.data) {
		t.Error("PDF バイト列が一致しない")
	}
}

func TestReportHandler_DownloadPDF_NotFound(t *testing.T) {
	h := NewReportHandler(&mockReportService{getErr: service.ErrReportNotFound}, &mockPDFService{})

	r := gin.New()
	r.GET("/reports/:id/pdf", h.DownloadPDF)
	w := doJSON(r, "GET", "/reports/999/pdf", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("ステータス 404 を期待したが %d", w.Code)
	}
}

func TestReportHandler_ListDescriptions(t *testing.T) {
	h := NewReportHandler(&mockReportService{descriptions: []string{"分解洗浄", "フィルター交換"}}, &mockPDFService{})

	r := gin.New()
	r.GET("/reports/descriptions", h.ListDescriptions)
	w := doJSON(r, "GET", "/reports/descriptions?limit=10", nil)

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
	resp := parseResponse(t, w)
	list, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data が配列ではない: %T", resp.Data)
	}
	if len(list) != 2 {
		t.Errorf("候補 2 件を期待したが %d 件", len(list))
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_Create_Success(t *testing.T) {
	schedule := &model.Schedule{Title: "作業: 田中 - 田中様邸", Status: "pending"}
	schedule.ID = 5
	h := NewScheduleHandler(&mockScheduleService{createResult: schedule})

	r := gin.New()
	r.POST("/schedules", authAs(1, model.RoleEditor), h.Create)
	w := doJSON(r, "POST", "/schedules", jsonBody(dto.CreateScheduleRequest{
		Title:         "作業: 田中 - 田中様邸",
		StartDatetime: "2025-06-01T09:00:00+09:00",
		EndDatetime:   "2025-06-01T17:00:00+09:00",
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("ステータス 201 を期待したが %d", w.Code)
	}
}

func TestScheduleHandler_Create_Unauthenticated(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	r := gin.New()
	r.POST("/schedules", h.Create)
	w := doJSON(r, "POST", "/schedules", jsonBody(dto.CreateScheduleRequest{
		Title:         "無認証",
		StartDatetime: "2025-06-01T09:00:00+09:00",
		EndDatetime:   "2025-06-01T17:00:00+09:00",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("ステータス 401 を期待したが %d", w.Code)
	}
}

func TestScheduleHandler_ErrorCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
	}{
		{"not_found", service.ErrScheduleNotFound, http.StatusNotFound, 27001},
		{"invalid_datetime", service.ErrInvalidDatetime, http.StatusBadRequest, 27002},
		{"invalid_range", service.ErrInvalidRange, http.StatusBadRequest, 27003},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewScheduleHandler(&mockScheduleService{updateErr: tc.err})

			r := gin.New()
			r.PUT("/schedules/:id", h.Update)
			w := doJSON(r, "PUT", "/schedules/5", jsonBody(map[string]string{}))

			if w.Code != tc.wantHTTP {
				t.Errorf("ステータス %d を期待したが %d", tc.wantHTTP, w.Code)
			}
			if resp := parseResponse(t, w); resp.Code != tc.wantCode {
				t.Errorf("コード %d を期待したが %d", tc.wantCode, resp.Code)
			}
		})
	}
}

func TestScheduleHandler_Move_Success(t *testing.T) {
	moved := &model.Schedule{Title: "移動後", Status: "pending"}
	moved.ID = 5
	h := NewScheduleHandler(&mockScheduleService{moveResult: moved})

	r := gin.New()
	r.POST("/schedules/move", h.Move)
	w := doJSON(r, "POST", "/schedules/move", jsonBody(dto.MoveScheduleRequest{
		ID:            5,
		StartDatetime: "2025-06-02T09:00:00+09:00",
		EndDatetime:   "2025-06-02T17:00:00+09:00",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
}

func TestScheduleHandler_Events_MissingRange(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	// from / to は必須
	r := gin.New()
	r.GET("/schedules/events", h.Events)
	w := doJSON(r, "GET", "/schedules/events", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("ステータス 400 を期待したが %d", w.Code)
	}
}

func TestScheduleHandler_Events_Success(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{
		events: []dto.EventResponse{
			{ID: 5, Title: "作業: 田中 - 田中様邸", Start: "2025-06-01T09:00:00+09:00"},
		},
	})

	r := gin.New()
	r.GET("/schedules/events", h.Events)
	w := doJSON(r, "GET", "/schedules/events?from=2025-06-01&to=2025-06-30", nil)

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
	resp := parseResponse(t, w)
	list, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data が配列ではない: %T", resp.Data)
	}
	if len(list) != 1 {
		t.Errorf("イベント 1 件を期待したが %d 件", len(list))
	}
}

func TestScheduleHandler_ExportICS(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{
		icsData: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
	})

	r := gin.New()
	r.GET("/schedules/export.ics", h.ExportICS)
	w := doJSON(r, "GET", "/schedules/export.ics?from=2025-06-01&to=2025-06-30", nil)

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type が text/calendar ではない: %s", ct)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("ICS 本文に VCALENDAR がない")
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler
// ═══════════════════════════════════════════════════════════

func TestExportHandler_OrderDetails_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "受注明細一覧_20250601_120000.xlsx",
	})

	r := gin.New()
	r.GET("/export/order-details.xlsx", h.OrderDetails)
	w := doJSON(r, "GET", "/export/order-details.xlsx", nil)

	if w.Code != http.StatusOK {
		t.Errorf("ステータス 200 を期待したが %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type が xlsx ではない: %s", ct)
	}
	if disp := w.Header().Get("Content-Disposition"); !strings.HasPrefix(disp, "attachment; filename*=UTF-8''") {
		t.Errorf("Content-Disposition の形式が不正: %s", disp)
	}
}

func TestExportHandler_OrderDetails_NoDetails(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoDetails})

	r := gin.New()
	r.GET("/export/order-details.xlsx", h.OrderDetails)
	w := doJSON(r, "GET", "/export/order-details.xlsx", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("ステータス 404 を期待したが %d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 28001 {
		t.Errorf("コード 28001 を期待したが %d", resp.Code)
	}
}
