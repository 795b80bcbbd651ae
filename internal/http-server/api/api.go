package api

import (
	"ChatPulse/internal/config"
	"ChatPulse/internal/http-server/handlers/agent"
	"ChatPulse/internal/http-server/handlers/errors"
	"ChatPulse/internal/http-server/handlers/key"
	"ChatPulse/internal/http-server/handlers/stats"
	"ChatPulse/internal/http-server/middleware/authenticate"
	"ChatPulse/internal/http-server/middleware/timeout"
	"ChatPulse/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	stats.Core
	agent.Core
	key.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))
	router.Use(authenticate.New(log, handler))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/stats", func(r chi.Router) {
			r.Get("/open-chats", stats.OpenChats(log, handler))
			r.Get("/open-chats/export", stats.Export(log, handler))
			r.Get("/heatmap", stats.HeatmapHandler(log, handler))
		})
		v1.Route("/agents", func(r chi.Router) {
			r.Get("/", agent.ListAgents(log, handler))
			r.Post("/", agent.AddAgent(log, handler))
			r.Post("/remove", agent.RemoveAgent(log, handler))
		})
		v1.Route("/key", func(r chi.Router) {
			r.Post("/new", key.Generate(log, handler))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
