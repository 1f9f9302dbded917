package content

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, page, limit int) (models.Page[models.Content], error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).(models.Page[models.Content]), args.Error(1)
}

func (m *ServiceMock) Flagged(ctx context.Context) ([]models.Content, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Content), args.Error(1)
}

func (m *ServiceMock) ByStatus(ctx context.Context, status string) ([]models.Content, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.Content), args.Error(1)
}

func (m *ServiceMock) ByType(ctx context.Context, contentType string) ([]models.Content, error) {
	args := m.Called(ctx, contentType)
	return args.Get(0).([]models.Content), args.Error(1)
}

func (m *ServiceMock) ByUser(ctx context.Context, userID int) ([]models.Content, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Content), args.Error(1)
}

func (m *ServiceMock) Details(ctx context.Context, id int) (models.Content, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Content), args.Error(1)
}

func (m *ServiceMock) Approve(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ActionResult[models.Content]), args.Error(1)
}

func (m *ServiceMock) Reject(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ActionResult[models.Content]), args.Error(1)
}

func (m *ServiceMock) Flag(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ActionResult[models.Content]), args.Error(1)
}

func (m *ServiceMock) Remove(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ActionResult[models.Content]), args.Error(1)
}

func (m *ServiceMock) Report(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ActionResult[models.Content]), args.Error(1)
}

func (m *ServiceMock) Search(ctx context.Context, query string) ([]models.Content, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Content), args.Error(1)
}

func (m *ServiceMock) Statistics(ctx context.Context) (models.ContentStatistics, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ContentStatistics), args.Error(1)
}

func (m *ServiceMock) RequiringModeration(ctx context.Context) ([]models.Content, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Content), args.Error(1)
}

func (m *ServiceMock) BulkApprove(ctx context.Context, ids []int) models.BulkResult[models.Content] {
	return m.Called(ctx, ids).Get(0).(models.BulkResult[models.Content])
}

func (m *ServiceMock) BulkReject(ctx context.Context, ids []int) models.BulkResult[models.Content] {
	return m.Called(ctx, ids).Get(0).(models.BulkResult[models.Content])
}

func (m *ServiceMock) Trends(ctx context.Context, days int) ([]models.ContentTrend, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]models.ContentTrend), args.Error(1)
}

func (m *ServiceMock) MostReported(ctx context.Context, limit int) ([]models.Content, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Content), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/content", New(newNoopLogger(), svc).Routes)
	return r
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestHandler_Lists(t *testing.T) {
	items := []models.Content{{ID: 2, Status: models.ContentFlagged, Reports: 3}}

	tests := []struct {
		name   string
		target string
		setup  func(m *ServiceMock)
	}{
		{name: "flagged", target: "/content/flagged", setup: func(m *ServiceMock) { m.On("Flagged", mock.Anything).Return(items, nil) }},
		{name: "moderation queue", target: "/content/moderation-queue", setup: func(m *ServiceMock) { m.On("RequiringModeration", mock.Anything).Return(items, nil) }},
		{name: "search", target: "/content/search?q=summer", setup: func(m *ServiceMock) { m.On("Search", mock.Anything, "summer").Return(items, nil) }},
		{name: "by status", target: "/content/status/flagged", setup: func(m *ServiceMock) { m.On("ByStatus", mock.Anything, "flagged").Return(items, nil) }},
		{name: "by type", target: "/content/type/poll", setup: func(m *ServiceMock) { m.On("ByType", mock.Anything, "poll").Return(items, nil) }},
		{name: "by user", target: "/content/user/4", setup: func(m *ServiceMock) { m.On("ByUser", mock.Anything, 4).Return(items, nil) }},
		{name: "most reported default", target: "/content/most-reported", setup: func(m *ServiceMock) { m.On("MostReported", mock.Anything, 10).Return(items, nil) }},
		{name: "most reported limit", target: "/content/most-reported?limit=1", setup: func(m *ServiceMock) { m.On("MostReported", mock.Anything, 1).Return(items, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &ServiceMock{}
			tt.setup(svc)

			code, env := do(t, newRouter(svc), http.MethodGet, tt.target, nil)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "OK", env.Status)

			var got []models.Content
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, items, got)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_ByTypeInvalid(t *testing.T) {
	svc := &ServiceMock{}
	svc.On("ByType", mock.Anything, "video").Return([]models.Content(nil), models.InvalidArgument("Invalid content type")).Once()

	code, env := do(t, newRouter(svc), http.MethodGet, "/content/type/video", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid content type", env.Error)
	svc.AssertExpectations(t)
}

func TestHandler_List(t *testing.T) {
	page := models.Page[models.Content]{Items: []models.Content{{ID: 1}}, Total: 5, TotalPages: 1, CurrentPage: 1}
	svc := &ServiceMock{}
	svc.On("List", mock.Anything, 1, 10).Return(page, nil).Once()

	code, env := do(t, newRouter(svc), http.MethodGet, "/content", nil)
	assert.Equal(t, http.StatusOK, code)

	var got models.Page[models.Content]
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, page, got)
	svc.AssertExpectations(t)
}

func TestHandler_Trends(t *testing.T) {
	trends := []models.ContentTrend{{Date: "2024-12-15", Polls: 1, Total: 1}}

	tests := []struct {
		name     string
		target   string
		days     int
		noCall   bool
		wantCode int
	}{
		{name: "default window", target: "/content/trends", days: 7, wantCode: http.StatusOK},
		{name: "custom window", target: "/content/trends?days=30", days: 30, wantCode: http.StatusOK},
		{name: "bad days", target: "/content/trends?days=week", noCall: true, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &ServiceMock{}
			if !tt.noCall {
				svc.On("Trends", mock.Anything, tt.days).Return(trends, nil).Once()
			}

			code, _ := do(t, newRouter(svc), http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.wantCode, code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Details(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		id        int
		mockErr   error
		wantCode  int
		wantError string
	}{
		{name: "found", target: "/content/1/details", id: 1, wantCode: http.StatusOK},
		{name: "missing", target: "/content/50/details", id: 50, mockErr: models.NotFound("Content"), wantCode: http.StatusNotFound, wantError: "Content not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &ServiceMock{}
			svc.On("Details", mock.Anything, tt.id).Return(models.Content{ID: tt.id}, tt.mockErr).Once()

			code, env := do(t, newRouter(svc), http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantError, env.Error)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Actions(t *testing.T) {
	tests := []struct {
		method string
		target string
		call   string
	}{
		{method: http.MethodPost, target: "/content/2/approve", call: "Approve"},
		{method: http.MethodPost, target: "/content/2/reject", call: "Reject"},
		{method: http.MethodPost, target: "/content/2/flag", call: "Flag"},
		{method: http.MethodPost, target: "/content/2/report", call: "Report"},
		{method: http.MethodDelete, target: "/content/2/remove", call: "Remove"},
	}
	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			res := models.Succeeded(tt.call+" done", models.Content{ID: 2})
			svc := &ServiceMock{}
			svc.On(tt.call, mock.Anything, 2).Return(res, nil).Once()

			code, env := do(t, newRouter(svc), tt.method, tt.target, nil)
			assert.Equal(t, http.StatusOK, code)

			var got models.ActionResult[models.Content]
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, res, got)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Bulk(t *testing.T) {
	res := models.BulkResult[models.Content]{Success: true, Updated: []models.Content{{ID: 1}}, Errors: []string{"Content 99 not found"}, Message: "1 content approved, 1 errors occurred"}

	tests := []struct {
		name      string
		target    string
		call      string
		body      string
		wantCode  int
		wantError string
	}{
		{name: "approve", target: "/content/bulk-approve", call: "BulkApprove", body: `{"contentIds":[1,99]}`, wantCode: http.StatusOK},
		{name: "reject", target: "/content/bulk-reject", call: "BulkReject", body: `{"contentIds":[1,99]}`, wantCode: http.StatusOK},
		{name: "missing ids", target: "/content/bulk-approve", body: `{}`, wantCode: http.StatusUnprocessableEntity, wantError: "field IDs is a required field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &ServiceMock{}
			if tt.call != "" {
				svc.On(tt.call, mock.Anything, []int{1, 99}).Return(res).Once()
			}

			code, env := do(t, newRouter(svc), http.MethodPost, tt.target, []byte(tt.body))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantError, env.Error)
			if tt.wantError == "" {
				var got models.BulkResult[models.Content]
				require.NoError(t, json.Unmarshal(env.Data, &got))
				assert.Equal(t, res, got)
			}
			svc.AssertExpectations(t)
		})
	}
}
