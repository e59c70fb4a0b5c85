package availabilityws

import (
	"context"
	"encoding/json"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

const MessageAvailabilityChanged = "availability_changed"

// Hub fans "sessions changed" events out to the booking pages open on a date.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	logger     zerolog.Logger
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	date string
	send chan []byte
}

type Message struct {
	Type      string `json:"type"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, date string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		date: date,
		send: make(chan []byte, 8),
	}
}

// Run owns the client registry until ctx is cancelled. After it returns,
// Register and Unregister are no-ops.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			set, ok := h.clients[client.date]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.date] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.date]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.date)
			}
		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

// Register reports false when the hub has stopped; the caller should drop the
// connection.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// NotifyDateChanged queues an event for date. It drops the event when the queue is
// full rather than block the request that caused it.
func (h *Hub) NotifyDateChanged(date string) {
	message := &Message{
		Type:      MessageAvailabilityChanged,
		Date:      date,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().Str("date", date).Msg("availability event dropped")
	}
}

func (h *Hub) deliver(message *Message) {
	encoded, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Msg("availability hub encode message")
		return
	}

	set, ok := h.clients[message.Date]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- encoded:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, message.Date)
	}
}

func (h *Hub) closeAll() {
	for date, set := range h.clients {
		for client := range set {
			close(client.send)
		}
		delete(h.clients, date)
	}
}

// ReadPump only watches for the browser going away; clients never send anything
// the hub acts on.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
