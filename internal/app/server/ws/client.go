package ws

import (
	"context"
	"errors"
	"sync"
)

// frameWriter is the transport surface the client drains to.
// *WebSocket implements it.
type frameWriter interface {
	WriteMessage(data []byte) error
	Close()
}

// RuntimeClient is the hub-facing view of one connection. Outbound
// frames go through a buffered channel drained by a dedicated write
// loop. Send never blocks: once the buffer is full further frames are
// dropped, so a slow reader never stalls the broadcaster.
type RuntimeClient struct {
	ctx    context.Context
	cancel context.CancelFunc
	ws     frameWriter
	connID string
	out    chan []byte
	once   sync.Once
}

func NewClient(parent context.Context, ws frameWriter, connID string) *RuntimeClient {
	ctx, cancel := context.WithCancel(parent)
	c := &RuntimeClient{
		ctx:    ctx,
		cancel: cancel,
		ws:     ws,
		connID: connID,
		out:    make(chan []byte, 256),
	}
	go c.writeLoop()
	return c
}

func (c *RuntimeClient) ConnectionID() string { return c.connID }

// Send enqueues one outbound frame. Delivery is best-effort: a closed
// client and a full buffer both surface as an error and the frame is
// dropped.
func (c *RuntimeClient) Send(ctx context.Context, data []byte) error {
	select {
	case <-c.ctx.Done():
		return errors.New("client closed")
	default:
	}
	select {
	case c.out <- data:
		return nil
	default:
		return errors.New("send buffer full, frame dropped")
	}
}

// Close is idempotent. The out channel is never closed so concurrent
// Send calls cannot hit a closed channel; they fail on the cancelled
// context instead.
func (c *RuntimeClient) Close() {
	c.once.Do(func() {
		c.cancel()
		c.ws.Close()
	})
}

// writeLoop drains outbound frames until the client is closed or the
// transport errors. A write failure closes the client so the hub stops
// feeding a dead connection.
func (c *RuntimeClient) writeLoop() {
	defer c.Close()
	for {
		select {
		case <-c.ctx.Done():
			return
		case data := <-c.out:
			if err := c.ws.WriteMessage(data); err != nil {
				return
			}
		}
	}
}
