package create

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

	"github.com/magabrotheeeer/mindspace-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/mindspace-backend/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreatePost(ctx context.Context, identity models.AuthUser, title, content, category string, tags []string) (*models.Post, error) {
	args := m.Called(ctx, identity, title, content, category, tags)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func identityContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
	ctx = context.WithValue(ctx, middlewarectx.User, "testuser")
	return context.WithValue(ctx, middlewarectx.Role, "user")
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	identity := models.AuthUser{UID: "uid-1", Username: "testuser", Role: "user"}

	tests := []struct {
		name           string
		body           string
		withIdentity   bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "успешное создание",
			body:         `{"title":"My story","content":"Some text","category":"support","tags":["hope"]}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("CreatePost", mock.Anything, identity, "My story", "Some text", "support", []string{"hope"}).
					Return(&models.Post{ID: 1, Title: "My story", Status: models.StatusPublished}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"title":"My story"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{`,
			withIdentity:   true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "нет заголовка публикации",
			body:           `{"content":"Some text","category":"support"}`,
			withIdentity:   true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Title is a required field`,
		},
		{
			name:           "недопустимая категория",
			body:           `{"title":"My story","content":"Some text","category":"random"}`,
			withIdentity:   true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Category has an unsupported value`,
		},
		{
			name:           "нет идентичности в контексте",
			body:           `{"title":"My story","content":"Some text","category":"support"}`,
			withIdentity:   false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:         "ошибка сервиса",
			body:         `{"title":"My story","content":"Some text","category":"support"}`,
			withIdentity: true,
			setupMock: func(m *MockService) {
				m.On("CreatePost", mock.Anything, identity, "My story", "Some text", "support", []string(nil)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to create post"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(tt.body))
			if tt.withIdentity {
				req = req.WithContext(identityContext(req.Context()))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
