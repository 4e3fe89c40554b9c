package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pusher/pusher-http-go/v5"
)

// PusherBroadcaster relays events through Pusher Channels.
type PusherBroadcaster struct {
	client pusher.Client
}

func NewPusherBroadcaster(appID, key, secret, cluster string) *PusherBroadcaster {
	return &PusherBroadcaster{
		client: pusher.Client{
			AppID:   appID,
			Key:     key,
			Secret:  secret,
			Cluster: cluster,
			Secure:  true,
		},
	}
}

func (b *PusherBroadcaster) Publish(_ context.Context, channel, event string, data any) error {
	if err := b.client.Trigger(channel, event, data); err != nil {
		return fmt.Errorf("trigger event: %w", err)
	}
	return nil
}

func (b *PusherBroadcaster) AuthorizeChannel(_ context.Context, socketID, channelName string, member Member) ([]byte, error) {
	params := url.Values{}
	params.Set("socket_id", socketID)
	params.Set("channel_name", channelName)
	body := []byte(params.Encode())

	var (
		grant []byte
		err   error
	)
	if strings.HasPrefix(channelName, "presence-") {
		grant, err = b.client.AuthorizePresenceChannel(body, pusher.MemberData{
			UserID: member.ID,
			UserInfo: map[string]string{
				"name":  member.Name,
				"email": member.Email,
			},
		})
	} else {
		grant, err = b.client.AuthorizePrivateChannel(body)
	}
	if err != nil {
		return nil, fmt.Errorf("authorize channel: %w", err)
	}
	return grant, nil
}

// Ping hits the Channels API as a cheap reachability check for readiness.
func (b *PusherBroadcaster) Ping(_ context.Context) error {
	if _, err := b.client.Channels(pusher.ChannelsParams{}); err != nil {
		return fmt.Errorf("list channels: %w", err)
	}
	return nil
}

// New returns a LogBroadcaster for ENV=local, PusherBroadcaster otherwise.
func New(env, appID, key, secret, cluster string, logger *slog.Logger) Broadcaster {
	if env == "local" {
		return NewLogBroadcaster(logger)
	}
	return NewPusherBroadcaster(appID, key, secret, cluster)
}

// LogBroadcaster logs events instead of relaying them — used in ENV=local
// so the server runs without Pusher credentials.
type LogBroadcaster struct {
	logger *slog.Logger
}

func NewLogBroadcaster(logger *slog.Logger) *LogBroadcaster {
	return &LogBroadcaster{logger: logger.With("component", "broadcast")}
}

func (b *LogBroadcaster) Publish(ctx context.Context, channel, event string, data any) error {
	b.logger.InfoContext(ctx, "event published (local dev)", "channel", channel, "event", event, "data", data)
	return nil
}

func (b *LogBroadcaster) AuthorizeChannel(ctx context.Context, socketID, channelName string, member Member) ([]byte, error) {
	b.logger.InfoContext(ctx, "channel subscription authorized (local dev)",
		"socket_id", socketID, "channel", channelName, "user_id", member.ID)
	return []byte(`{"auth":"local-dev"}`), nil
}

func (b *LogBroadcaster) Ping(_ context.Context) error { return nil }
