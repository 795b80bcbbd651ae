package agent

import (
	"ChatPulse/entity"
	"ChatPulse/internal/lib/api/response"
	"ChatPulse/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

func AddAgent(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.agent")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var agent entity.Agent
		if err := render.Bind(r, &agent); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		if err := handler.AddAgent(agent); err != nil {
			logger.Error("failed to add agent", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to add agent"))
			return
		}

		logger.With(
			slog.String("phone", agent.Phone),
		).Info("agent added")
		render.JSON(w, r, response.Ok("agent added"))
	}
}
