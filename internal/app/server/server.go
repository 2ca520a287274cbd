package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"chatrelay/internal/app/server/handlers"
	"chatrelay/internal/config"
	"chatrelay/internal/core/contracts"
	"chatrelay/internal/core/services"
	"chatrelay/pkg/middleware"
)

type Server struct {
	log             *slog.Logger
	cfg             config.Config
	mux             *http.ServeMux
	authHandler     *handlers.AuthHandler
	messagesHandler *handlers.MessagesHandler
	wsHandler       *handlers.WSHandler
}

func New(
	log *slog.Logger,
	cfg config.Config,
	users *services.UserService,
	messages *services.MessageService,
	gateway *services.Gateway,
	hub contracts.Hub,
) *Server {
	s := &Server{
		log:             log,
		cfg:             cfg,
		mux:             http.NewServeMux(),
		authHandler:     handlers.NewAuthHandler(users),
		messagesHandler: handlers.NewMessagesHandler(messages),
		wsHandler:       handlers.NewWSHandler(hub, gateway),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/register", s.authHandler.Register)
	s.mux.HandleFunc("POST /api/login", s.authHandler.Login)
	s.mux.HandleFunc("GET /api/messages", s.messagesHandler.List)
	s.mux.HandleFunc("POST /api/messages", s.messagesHandler.Create)
	s.mux.HandleFunc("GET /healthz", handlers.Health)
	s.mux.HandleFunc("/ws", s.wsHandler.Handler)
	s.mux.Handle("/", http.FileServer(http.Dir(s.cfg.Service.StaticDir)))
}

// Start serves until ctx is cancelled, then drains with a short
// shutdown window. Live websockets are closed by their own lifetimes.
func (s *Server) Start(ctx context.Context) error {
	var handler http.Handler = s.mux
	handler = middleware.RequestLogger(s.log)(handler)
	handler = middleware.Tracer(s.cfg.Service.Name)(handler)

	srv := &http.Server{
		Addr:        ":" + s.cfg.Service.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server - listening", "port", s.cfg.Service.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
