package agent

import (
	"ChatPulse/internal/lib/api/response"
	"ChatPulse/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

func ListAgents(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.agent")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		agents, err := handler.ListAgents()
		if err != nil {
			logger.Error("failed to list agents", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to list agents"))
			return
		}

		render.JSON(w, r, agents)
	}
}
