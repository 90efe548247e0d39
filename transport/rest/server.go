package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger   *slog.Logger
	gamePlay service.GamePlayService
}

func New(logger *slog.Logger, gamePlay service.GamePlayService) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		gamePlay: gamePlay,
	}
}

// Router - builds the HTTP routes.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(that.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(api chi.Router) {
		api.Route("/game", func(game chi.Router) {
			game.Post("/", that.startGame)
			game.Get("/", that.getGame)
			game.Delete("/", that.resetGame)
			game.Post("/turn", that.makeTurn)
			game.Get("/probability", that.probability)
		})

		api.Route("/stats", func(stats chi.Router) {
			stats.Get("/", that.getStatistics)
			stats.Delete("/", that.resetStatistics)
		})
	})

	return router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(writer, req.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(wrapped, req)

		that.logger.Debug("request served",
			"requestID", middleware.GetReqID(req.Context()),
			"method", req.Method,
			"path", req.URL.Path,
			"status", wrapped.Status(),
			"duration", time.Since(started),
		)
	})
}
