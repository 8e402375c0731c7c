package stories

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

// Request — настроение и контекст для генерации историй.
type Request struct {
	Mood        string `json:"mood" validate:"required"`
	Context     string `json:"context" validate:"required"`
	UserMessage string `json:"userMessage"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Stories(ctx context.Context, mood, storyContext, userMessage string) []assistant.Story
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.stories"

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
		render.JSON(w, r, response.Error("mood and context are required"))
		return
	}

	result := h.service.Stories(r.Context(), req.Mood, req.Context, req.UserMessage)
	log.Info("stories generated", slog.Int("count", len(result)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stories": result,
	}))
}
