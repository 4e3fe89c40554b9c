package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dkozlov/livetodo/internal/broadcast"
	"github.com/dkozlov/livetodo/internal/metrics"
	"github.com/dkozlov/livetodo/internal/token"
	"github.com/dkozlov/livetodo/internal/usecase"
	"github.com/gin-gonic/gin"
)

type eventApplier interface {
	Apply(ctx context.Context, event string, data json.RawMessage) error
}

type tokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// PusherHandler is the event relay plus the channel authorizer: the relay
// gates who may send events, the authorizer gates who may receive them.
type PusherHandler struct {
	bus    broadcast.Broadcaster
	todos  eventApplier
	tokens tokenVerifier
	logger *slog.Logger
}

func NewPusherHandler(bus broadcast.Broadcaster, todos eventApplier, tokens tokenVerifier, logger *slog.Logger) *PusherHandler {
	return &PusherHandler{
		bus:    bus,
		todos:  todos,
		tokens: tokens,
		logger: logger.With("component", "pusher_handler"),
	}
}

type triggerRequest struct {
	Channel string          `json:"channel" binding:"required"`
	Event   string          `json:"event"   binding:"required"`
	Data    json.RawMessage `json:"data"`
}

// POST /pusher
// Forwards the triple to the bus verbatim. At-most-once: a failed publish is
// a 500 with no retry. The response contract is {success:bool} rather than
// the usual {error} shape because the browser client keys off "success".
func (h *PusherHandler) Trigger(c *gin.Context) {
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": errTriggerFailed})
		return
	}

	// Mirror recognized todo mutations into the store so the next initial
	// page load reflects them. Best effort: the broadcast still goes out.
	if req.Channel == usecase.TodoChannel {
		if err := h.todos.Apply(c.Request.Context(), req.Event, req.Data); err != nil {
			h.logger.Warn("apply todo event", "event", req.Event, "error", err)
		}
	}

	if err := h.bus.Publish(c.Request.Context(), req.Channel, req.Event, req.Data); err != nil {
		metrics.PublishFailuresTotal.Inc()
		h.logger.Error("trigger event", "channel", req.Channel, "event", req.Event, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": errTriggerFailed})
		return
	}

	metrics.EventsPublishedTotal.WithLabelValues(req.Channel, req.Event).Inc()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type channelAuthRequest struct {
	SocketID    string `json:"socket_id"    form:"socket_id"    binding:"required"`
	ChannelName string `json:"channel_name" form:"channel_name" binding:"required"`
}

// POST /pusher/auth
// Called by the bus client library when the browser subscribes. This is the
// enforcement point for who may receive events, so it verifies the bearer
// token itself; every failure collapses to 403.
func (h *PusherHandler) ChannelAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		metrics.ChannelAuthTotal.WithLabelValues("denied").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
		return
	}

	claims, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		metrics.ChannelAuthTotal.WithLabelValues("denied").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
		return
	}

	// The bus client posts form-encoded by default; JSON is accepted too.
	var req channelAuthRequest
	if err := c.ShouldBind(&req); err != nil {
		metrics.ChannelAuthTotal.WithLabelValues("denied").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
		return
	}

	grant, err := h.bus.AuthorizeChannel(c.Request.Context(), req.SocketID, req.ChannelName, broadcast.Member{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	})
	if err != nil {
		metrics.ChannelAuthTotal.WithLabelValues("denied").Inc()
		h.logger.Error("authorize channel", "channel", req.ChannelName, "error", err)
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
		return
	}

	metrics.ChannelAuthTotal.WithLabelValues("granted").Inc()
	c.Data(http.StatusOK, "application/json", grant)
}
