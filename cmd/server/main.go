package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkozlov/livetodo/config"
	"github.com/dkozlov/livetodo/internal/broadcast"
	"github.com/dkozlov/livetodo/internal/health"
	"github.com/dkozlov/livetodo/internal/infrastructure/memory"
	ctxlog "github.com/dkozlov/livetodo/internal/log"
	"github.com/dkozlov/livetodo/internal/metrics"
	"github.com/dkozlov/livetodo/internal/token"
	httptransport "github.com/dkozlov/livetodo/internal/transport/http"
	"github.com/dkozlov/livetodo/internal/transport/http/handler"
	"github.com/dkozlov/livetodo/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	// Stores live for the process lifetime; a restart drops all state.
	userRepo := memory.NewUserRepository()
	todoRepo := memory.NewTodoRepository()

	var tokens token.Service
	switch cfg.SessionMode {
	case "single":
		sessions := token.NewSessionSecrets(cfg.TokenTTL)
		metrics.RegisterActiveSessions(sessions.Active)
		tokens = sessions
	default:
		tokens = token.NewStaticSecrets([]byte(cfg.JWTSecret), cfg.TokenTTL)
	}

	bus := broadcast.New(cfg.Env, cfg.PusherAppID, cfg.PusherKey, cfg.PusherSecret, cfg.PusherCluster, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokens)
	todoUsecase := usecase.NewTodoUsecase(todoRepo)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	todoHandler := handler.NewTodoHandler(todoUsecase, logger)
	pusherHandler := handler.NewPusherHandler(bus, todoUsecase, tokens, logger)

	checker := health.NewChecker(bus, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, todoHandler, pusherHandler, httptransport.RouterOptions{
			Tokens:           tokens,
			RelayRequireAuth: cfg.RelayRequireAuth,
		}),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "session_mode", cfg.SessionMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
