package stats

import (
	"ChatPulse/entity"
	"ChatPulse/internal/lib/api/response"
	"ChatPulse/internal/lib/sl"
	"ChatPulse/internal/lib/validate"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strings"
)

type openChatsQuery struct {
	Types string `validate:"omitempty"`
	Phone string `validate:"omitempty,min=7"`
	Agent string `validate:"omitempty"`
}

func (q openChatsQuery) filter() (entity.StatsFilter, bool) {
	filter := entity.StatsFilter{
		Phone: q.Phone,
		Agent: q.Agent,
	}
	if q.Types == "" {
		return filter, true
	}
	for _, name := range strings.Split(q.Types, ",") {
		t := entity.ChatType(strings.TrimSpace(name))
		if !t.Valid() {
			return filter, false
		}
		filter.Types = append(filter.Types, t)
	}
	return filter, true
}

func OpenChats(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.stats")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := openChatsQuery{
			Types: r.URL.Query().Get("type"),
			Phone: r.URL.Query().Get("phone"),
			Agent: r.URL.Query().Get("agent"),
		}
		if err := validate.Struct(query); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		filter, ok := query.filter()
		if !ok {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown chat type"))
			return
		}

		metrics, err := handler.OpenChatMetrics(r.Context(), filter)
		if err != nil {
			logger.Error("failed to compute metrics", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("Failed to compute metrics"))
			return
		}

		render.JSON(w, r, metrics)
	}
}
