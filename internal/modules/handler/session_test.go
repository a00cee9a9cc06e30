package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/schema-studio/schema-studio/internal/modules/model"
	"github.com/schema-studio/schema-studio/internal/modules/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) List(ctx context.Context) (*service.ListSessionsOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListSessionsOutput), args.Error(1)
}

func (m *MockSessionService) GetByID(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupSessionRouter(svc service.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSessionHandler(svc)
	r.GET("/sessions", h.GetSessions)
	r.GET("/session/:session_id", h.GetSession)
	r.DELETE("/session/:session_id", h.DeleteSession)
	return r
}

func TestSessionHandler_GetSessions(t *testing.T) {
	svc := &MockSessionService{}
	svc.On("List", mock.Anything).Return(&service.ListSessionsOutput{
		Sessions: []string{"session_a", "session_b"},
		Count:    2,
	}, nil)

	req := httptest.NewRequest("GET", "/sessions", nil)
	w := httptest.NewRecorder()
	setupSessionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Contains(t, w.Body.String(), "session_a")
	svc.AssertExpectations(t)
}

func TestSessionHandler_GetSession_RedactsCredential(t *testing.T) {
	svc := &MockSessionService{}
	svc.On("GetByID", mock.Anything, "session_a").Return(&model.Session{
		ID:                 "session_a",
		ProjectDescription: "blog platform",
		APIKey:             "super-secret-key-123",
		ModelName:          "gemini-2.0-flash",
		Questions:          []model.Question{{ID: "q1", Question: "Scale?", Options: []string{"Small"}}},
	}, nil)

	req := httptest.NewRequest("GET", "/session/session_a", nil)
	w := httptest.NewRecorder()
	setupSessionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blog platform")
	// the stored credential must never appear in the response body
	assert.NotContains(t, w.Body.String(), "super-secret-key-123")
	assert.NotContains(t, w.Body.String(), "api_key")
	svc.AssertExpectations(t)
}

func TestSessionHandler_GetSession_NotFound(t *testing.T) {
	svc := &MockSessionService{}
	svc.On("GetByID", mock.Anything, "session_missing").Return(nil, service.ErrSessionNotFound)

	req := httptest.NewRequest("GET", "/session/session_missing", nil)
	w := httptest.NewRecorder()
	setupSessionRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "session not found")
}

func TestSessionHandler_DeleteSession(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setup          func(*MockSessionService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "successful deletion",
			sessionID: "session_a",
			setup: func(svc *MockSessionService) {
				svc.On("Delete", mock.Anything, "session_a").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Session deleted successfully",
		},
		{
			name:      "missing session",
			sessionID: "session_missing",
			setup: func(svc *MockSessionService) {
				svc.On("Delete", mock.Anything, "session_missing").Return(service.ErrSessionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "session not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockSessionService{}
			tt.setup(svc)

			req := httptest.NewRequest("DELETE", "/session/"+tt.sessionID, nil)
			w := httptest.NewRecorder()
			setupSessionRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestLanguageHandler_GetSupportedLanguages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/supported-languages", NewLanguageHandler().GetSupportedLanguages)

	req := httptest.NewRequest("GET", "/supported-languages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"go"`)
	assert.Contains(t, w.Body.String(), "gorm")
	assert.Contains(t, w.Body.String(), "sqlalchemy")
}
