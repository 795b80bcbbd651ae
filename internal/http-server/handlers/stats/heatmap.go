package stats

import (
	"ChatPulse/internal/lib/api/response"
	"ChatPulse/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

func HeatmapHandler(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.stats")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		days := 7
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 90 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("days must be between 1 and 90"))
				return
			}
			days = parsed
		}

		hm, err := handler.Heatmap(r.Context(), days)
		if err != nil {
			logger.Error("failed to build heatmap", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("Failed to build heatmap"))
			return
		}

		render.JSON(w, r, hm)
	}
}
