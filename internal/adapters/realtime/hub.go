// Package realtime keeps per-workspace WebSocket rooms and fans workspace events out to them.
// With a redis client attached, events travel over redis pub/sub so every process relays them
// to its own connections.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	"github.com/flowhive/flowhive_backend/internal/observability"
)

const (
	channelPrefix = "flowhive:ws:"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

type confirmationMessage struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Original any    `json:"original"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type client struct {
	hub         *Hub
	conn        *websocket.Conn
	workspaceID string
	send        chan []byte
	closeOnce   sync.Once
}

// Hub tracks connections by workspace. The zero value is not usable; use NewHub.
type Hub struct {
	logger   *slog.Logger
	rdb      *redis.Client
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	rooms  map[string]map[*client]struct{}
	closed bool
}

var _ gateways.WorkspaceNotifier = (*Hub)(nil)

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithRedis routes published events through redis pub/sub.
func WithRedis(rdb *redis.Client) HubOption {
	return func(h *Hub) { h.rdb = rdb }
}

// WithAllowedOrigins restricts the Origin header accepted on upgrade. Empty allows any origin.
func WithAllowedOrigins(origins []string) HubOption {
	return func(h *Hub) {
		if len(origins) == 0 {
			return
		}
		allowed := make(map[string]bool, len(origins))
		for _, o := range origins {
			allowed[strings.TrimRight(o, "/")] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		}
	}
}

func NewHub(logger *slog.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		logger: logger,
		rooms:  make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run relays redis messages to local rooms until ctx is cancelled. Without redis it only
// waits for ctx.
func (h *Hub) Run(ctx context.Context) error {
	if h.rdb == nil {
		<-ctx.Done()
		return nil
	}

	sub := h.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		h.logger.Error("Realtime backplane subscribe failed", slog.String("error", err.Error()))
		return err
	}
	h.logger.Info("Realtime backplane subscribed", slog.String("pattern", channelPrefix+"*"))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			h.broadcastLocal(strings.TrimPrefix(msg.Channel, channelPrefix), []byte(msg.Payload))
		}
	}
}

// Close disconnects every client. Further upgrades are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	var clients []*client
	for _, room := range h.rooms {
		for c := range room {
			clients = append(clients, c)
			observability.RealtimeClientDisconnected()
		}
	}
	h.rooms = make(map[string]map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// Publish sends event to every connection of event.WorkspaceID.
func (h *Hub) Publish(ctx context.Context, event domain.RealtimeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.publishRaw(ctx, event.WorkspaceID, payload)
}

func (h *Hub) publishRaw(ctx context.Context, workspaceID string, payload []byte) error {
	if h.rdb != nil {
		if err := h.rdb.Publish(ctx, channelPrefix+workspaceID, payload).Err(); err != nil {
			h.logger.Warn("Realtime publish failed, delivering locally",
				slog.String("workspace_id", workspaceID), slog.String("error", err.Error()))
			h.broadcastLocal(workspaceID, payload)
			return err
		}
		return nil
	}
	h.broadcastLocal(workspaceID, payload)
	return nil
}

// ConnectionCount returns the number of local connections in a workspace room.
func (h *Hub) ConnectionCount(workspaceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[workspaceID])
}

// Serve upgrades the request and blocks until the connection closes. Authentication and
// membership checks are the caller's job.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, workspaceID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{hub: h, conn: conn, workspaceID: workspaceID, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(writeWait))
		conn.Close()
		return nil
	}

	go c.writePump()
	c.readPump(r.Context())
	return nil
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	room, ok := h.rooms[c.workspaceID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[c.workspaceID] = room
	}
	room[c] = struct{}{}
	observability.RealtimeClientConnected()
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.workspaceID]; ok {
		if _, present := room[c]; present {
			delete(room, c)
			observability.RealtimeClientDisconnected()
		}
		if len(room) == 0 {
			delete(h.rooms, c.workspaceID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// broadcastLocal queues payload on every local client of the room. Clients whose buffer is
// full are dropped.
func (h *Hub) broadcastLocal(workspaceID string, payload []byte) {
	h.mu.RLock()
	var slow []*client
	for c := range h.rooms[workspaceID] {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow realtime client", slog.String("workspace_id", workspaceID))
		h.unregister(c)
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *client) enqueue(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.rooms[c.workspaceID][c]; !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("Realtime connection closed", slog.String("error", err.Error()))
			}
			return
		}

		var message any
		if err := json.Unmarshal(data, &message); err != nil {
			c.enqueue(errorMessage{Type: "error", Message: "Invalid JSON format"})
			continue
		}

		c.enqueue(confirmationMessage{Type: "confirmation", Message: "Message received", Original: message})
		_ = c.hub.Publish(context.WithoutCancel(ctx), domain.RealtimeEvent{
			Type:        "broadcast",
			WorkspaceID: c.workspaceID,
			Data:        message,
		})
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
