package support

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/mindspace-backend/internal/services/assistant"
)

// MockService реализует интерфейс support.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Support(ctx context.Context, message string) assistant.SupportReply {
	args := m.Called(ctx, message)
	return args.Get(0).(assistant.SupportReply)
}

func TestSupportHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный ответ",
			body: `{"message":"I feel overwhelmed"}`,
			setupMock: func(m *MockService) {
				m.On("Support", mock.Anything, "I feel overwhelmed").
					Return(assistant.SupportReply{
						Response: "You're not alone in this.",
						Model:    "deepseek/deepseek-r1-0528:free",
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"response":"You're not alone in this."`,
		},
		{
			name: "fallback провайдера тоже даёт 200",
			body: `{"message":"hi"}`,
			setupMock: func(m *MockService) {
				m.On("Support", mock.Anything, "hi").
					Return(assistant.SupportReply{
						Response: "I'm sorry, I'm having trouble connecting right now.",
						Model:    "fallback",
						Error:    "AI service temporarily unavailable",
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"model":"fallback"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "пустое сообщение",
			body:           `{"message":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"message is required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/ai-support", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
