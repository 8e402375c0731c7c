package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/mindspace-backend/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListPublished(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]*models.Post)
	return posts, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "непустая выдача",
			setupMock: func(m *MockService) {
				m.On("ListPublished", mock.Anything).Return([]*models.Post{
					{ID: 2, Title: "Newer", Status: models.StatusPublished},
					{ID: 1, Title: "Older", Status: models.StatusPublished},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Newer"`,
		},
		{
			name: "пустая выдача",
			setupMock: func(m *MockService) {
				m.On("ListPublished", mock.Anything).Return([]*models.Post{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"posts":[]`,
		},
		{
			name: "ошибка сервиса",
			setupMock: func(m *MockService) {
				m.On("ListPublished", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to fetch posts"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
