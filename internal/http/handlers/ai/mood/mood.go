package mood

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

// Request — текст для анализа настроения.
type Request struct {
	Text string `json:"text" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	AnalyzeMood(ctx context.Context, text string) assistant.MoodAnalysis
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.mood"

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
		render.JSON(w, r, response.Error("text is required for mood analysis"))
		return
	}

	analysis := h.service.AnalyzeMood(r.Context(), req.Text)
	log.Info("mood analyzed", slog.String("mood", analysis.Mood))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"analysis": analysis,
	}))
}
