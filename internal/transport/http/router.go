package httptransport

import (
	"log/slog"

	"github.com/dkozlov/livetodo/internal/token"
	"github.com/dkozlov/livetodo/internal/transport/http/handler"
	"github.com/dkozlov/livetodo/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// Auth endpoints are unauthenticated, so they get a per-IP rate limit.
const (
	authRatePerMin = 30
	authBurst      = 10
)

type RouterOptions struct {
	Tokens token.Service
	// RelayRequireAuth additionally bearer-gates POST /pusher. The channel
	// authorizer stays the enforced subscribe-side boundary either way.
	RelayRequireAuth bool
}

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, todoHandler *handler.TodoHandler, pusherHandler *handler.PusherHandler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(opts.Tokens)
	limiter := middleware.NewRateLimiter(authRatePerMin, authBurst)

	r.POST("/register", limiter.Middleware(), authHandler.Register)
	r.POST("/login", limiter.Middleware(), authHandler.Login)

	r.GET("/todos", authMW, todoHandler.List)

	if opts.RelayRequireAuth {
		r.POST("/pusher", authMW, pusherHandler.Trigger)
	} else {
		r.POST("/pusher", pusherHandler.Trigger)
	}
	r.POST("/pusher/auth", pusherHandler.ChannelAuth)

	return r
}
