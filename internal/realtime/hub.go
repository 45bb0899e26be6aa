package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/ardentinvoicing/ardent/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens via the JWT middleware before the upgrade
	CheckOrigin: func(r *http.Request) bool { return true },
}

// subscriber is one websocket connection with the channels it listens on
type subscriber struct {
	conn     *websocket.Conn
	send     chan []byte
	channels map[string]struct{}
}

// Hub bridges redis pub/sub to websocket subscribers. One pattern
// subscription covers all tenant and user channels; messages are fanned
// out to connections whose channel set includes the message channel.
type Hub struct {
	rdb    *redis.Client
	logger *logger.Logger

	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
}

// NewHub creates a new realtime hub
func NewHub(rdb *redis.Client, log *logger.Logger) *Hub {
	return &Hub{
		rdb:         rdb,
		logger:      log,
		subscribers: map[*subscriber]struct{}{},
	}
}

// Enabled reports whether realtime delivery is available
func (h *Hub) Enabled() bool {
	return h.rdb != nil
}

// Run consumes the redis pattern subscription until ctx is cancelled.
// Must be started once at boot when redis is configured.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	pubsub := h.rdb.PSubscribe(ctx, "tenant:*", "user:*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.dispatch(msg.Channel, []byte(msg.Payload))
		}
	}
}

func (h *Hub) dispatch(channel string, body []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers {
		if _, ok := sub.channels[channel]; !ok {
			continue
		}
		select {
		case sub.send <- body:
		default:
			// Slow consumer; drop the message rather than block the hub
			h.logger.Warnw("dropping realtime message for slow subscriber",
				"channel", channel)
		}
	}
}

func (h *Hub) register(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.send)
	}
}

// ServeWS upgrades the request and streams messages for the given
// channels until the peer disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, channels []string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := &subscriber{
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		channels: map[string]struct{}{},
	}
	for _, c := range channels {
		sub.channels[c] = struct{}{}
	}

	h.register(sub)

	// Confirm the subscription so clients know which channels are live
	ack, _ := json.Marshal(map[string]any{
		"type":     "subscribed",
		"channels": channels,
	})
	select {
	case sub.send <- ack:
	default:
	}

	go h.writePump(sub)
	go h.readPump(sub)
	return nil
}

// readPump drains the connection so pong handlers fire and closes are
// detected promptly. Inbound frames carry no commands today.
func (h *Hub) readPump(sub *subscriber) {
	defer func() {
		h.unregister(sub)
		sub.conn.Close()
	}()

	sub.conn.SetReadLimit(maxMessageSize)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debugw("websocket closed unexpectedly", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
