package key

import (
	"ChatPulse/internal/lib/api/response"
	"ChatPulse/internal/lib/sl"
	"encoding/json"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type GenerateRequest struct {
	Username string `json:"username"`
}

type GenerateResponse struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.key")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		apiKey, err := handler.GenerateApiKey(req.Username)
		if err != nil {
			logger.Error("failed to generate api key", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to generate key"))
			return
		}

		logger.With(
			slog.String("username", req.Username),
		).Info("api key issued")
		render.JSON(w, r, GenerateResponse{Username: req.Username, Key: apiKey})
	}
}
