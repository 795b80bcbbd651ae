package agent

import (
	"ChatPulse/internal/lib/api/response"
	"ChatPulse/internal/lib/sl"
	"encoding/json"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type RemoveRequest struct {
	Phone string `json:"phone"`
}

func RemoveAgent(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.agent")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req RemoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := handler.RemoveAgent(req.Phone); err != nil {
			logger.Error("failed to remove agent", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to remove agent"))
			return
		}

		logger.With(
			slog.String("phone", req.Phone),
		).Info("agent removed")
		render.JSON(w, r, response.Ok("agent removed"))
	}
}
