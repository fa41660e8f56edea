package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yashtriyar/stock-watchlist-bot/internal/alert"
	"github.com/yashtriyar/stock-watchlist-bot/internal/config"
	"github.com/yashtriyar/stock-watchlist-bot/internal/logger"
	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

type Server struct {
	httpServer *http.Server
	repo       *watchlist.Repository
	engine     *alert.Engine
	config     *config.Config
	logger     *logger.Logger
}

func NewServer(repo *watchlist.Repository, engine *alert.Engine, cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		repo:   repo,
		engine: engine,
		config: cfg,
		logger: log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
