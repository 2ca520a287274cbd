package contracts

import "context"

// Hub is the broadcast router: it owns the set of live connections and
// fans event frames out to them. Delivery is best-effort; a frame for a
// connection that has since disconnected is silently dropped.
type Hub interface {
	// Register adds a client to the fan-out set.
	Register(c Client)
	// Unregister removes the client. Unknown clients are ignored.
	Unregister(c Client)
	// BroadcastAll delivers the frame to every connected client,
	// including the originator.
	BroadcastAll(ctx context.Context, data []byte)
	// BroadcastExcept delivers the frame to every connected client
	// except the named origin connection.
	BroadcastExcept(ctx context.Context, originID string, data []byte)
}

// Client is the minimal interface the hub needs to talk to one
// websocket connection.
type Client interface {
	ConnectionID() string
	Send(ctx context.Context, data []byte) error
	Close()
}
