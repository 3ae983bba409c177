// Package stream broadcasts newly detected insights to websocket
// subscribers (spec.md §3's domain-stack table wires gorilla/websocket
// here). It is adapted from the hub/client pump pattern the rest of this
// codebase's websocket surface uses: a single goroutine owns client
// registration and broadcast, each client gets its own buffered send
// channel and read/write pumps.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the envelope every broadcast insight/recommendation update is
// wrapped in before being written to a client.
type Message struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	CompanyID string    `json:"company_id,omitempty"`
}

// Hub fans out insight events to every subscribed websocket client,
// optionally filtered to the company each client requested.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan Message
	logger     logger.Logger
	mu         sync.RWMutex
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	companyID string // "" subscribes to every company
}

// NewHub constructs an idle Hub; call Run to start its dispatch loop.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Message),
		logger:     log,
	}
}

// Run drives client registration and broadcast dispatch until ctx is
// cancelled. It must run in its own goroutine for the lifetime of the
// service.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.logger.Info("insight stream client connected", "company_filter", c.companyID)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			body, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("marshal stream message failed", "error", err)
				continue
			}
			h.mu.RLock()
			for c := range h.clients {
				if c.companyID != "" && c.companyID != msg.CompanyID {
					continue
				}
				select {
				case c.send <- body:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			return
		}
	}
}

// BroadcastInsight notifies every subscribed client of a newly detected or
// updated insight.
func (h *Hub) BroadcastInsight(insight models.Insight) {
	h.broadcast <- Message{Type: "insight", Data: insight, Timestamp: time.Now(), CompanyID: insight.CompanyID}
}

// BroadcastRecommendations notifies subscribers of the recommendations
// generated for an insight.
func (h *Hub) BroadcastRecommendations(companyID, insightID string, recs []models.Recommendation) {
	h.broadcast <- Message{
		Type:      "recommendations",
		Data:      map[string]any{"insight_id": insightID, "recommendations": recs},
		Timestamp: time.Now(),
		CompanyID: companyID,
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and registers
// it as a client. Query param "companyId", if set, scopes the subscription
// to that company only.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("insight stream upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		companyID: strings.TrimSpace(r.URL.Query().Get("companyId")),
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
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
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
