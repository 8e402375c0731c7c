package vote

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mindspace-backend/internal/http/response"
	"github.com/magabrotheeeer/mindspace-backend/internal/lib/sl"
	"github.com/magabrotheeeer/mindspace-backend/internal/models"
	"github.com/magabrotheeeer/mindspace-backend/internal/services/forum"
)

// Request — тип голоса: "up" или "down".
type Request struct {
	Type string `json:"type"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	VoteComment(ctx context.Context, id int, voteType string) (*models.Comment, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.vote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	comment, err := h.service.VoteComment(r.Context(), id, req.Type)
	if err != nil {
		if errors.Is(err, forum.ErrCommentNotFound) {
			log.Error("comment not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("comment not found"))
			return
		}
		log.Error("failed to vote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to vote"))
		return
	}

	log.Info("comment vote counted", slog.Int("id", id), slog.String("type", req.Type))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"comment": comment,
	}))
}
