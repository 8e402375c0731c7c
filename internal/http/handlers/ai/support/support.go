// Package support реализует HTTP-обработчик чата эмоциональной поддержки.
//
// Сообщение пользователя передаётся внешнему chat-completion API; при
// недоступности провайдера сервис возвращает статический поддерживающий ответ
// со статусом 200 — деградация вместо ошибки.
package support

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/mindspace-backend/internal/http/response"
	"github.com/magabrotheeeer/mindspace-backend/internal/lib/sl"
	"github.com/magabrotheeeer/mindspace-backend/internal/services/assistant"
)

// Request — сообщение пользователя ассистенту.
type Request struct {
	Message string `json:"message" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Support(ctx context.Context, message string) assistant.SupportReply
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.support"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("message is required"))
		return
	}

	reply := h.service.Support(r.Context(), req.Message)
	log.Info("support reply generated", slog.String("model", reply.Model))
	render.JSON(w, r, response.StatusOKWithData(reply))
}
