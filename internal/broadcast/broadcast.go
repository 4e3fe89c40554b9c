package broadcast

import "context"

// Member identifies a verified user attached to a channel subscription so
// presence-aware channels can see who is connected.
type Member struct {
	ID    string
	Name  string
	Email string
}

// Broadcaster is the gateway to the hosted pub/sub bus. Publish is
// fire-and-forget from the caller's perspective: no retry, no idempotency
// key. AuthorizeChannel returns the bus's grant envelope verbatim; its shape
// belongs to the bus client library and is treated as opaque.
type Broadcaster interface {
	Publish(ctx context.Context, channel, event string, data any) error
	AuthorizeChannel(ctx context.Context, socketID, channelName string, member Member) ([]byte, error)
	Ping(ctx context.Context) error
}
