package signup

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

	"github.com/magabrotheeeer/mindspace-backend/internal/services/auth"
)

// MockService реализует интерфейс signup.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func TestSignupHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"new_user","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "new_user", "secret123").Return("uid-1", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"message":"user created successfully"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "короткое имя пользователя",
			body:           `{"username":"ab","password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Username is too short`,
		},
		{
			name:           "короткий пароль",
			body:           `{"username":"new_user","password":"123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Password is too short`,
		},
		{
			name: "имя занято",
			body: `{"username":"taken","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "taken", "secret123").
					Return("", auth.ErrUsernameTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"username already exists"}`,
		},
		{
			name: "ошибка сервиса",
			body: `{"username":"new_user","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "new_user", "secret123").
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to register user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
