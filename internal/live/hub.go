package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// Rooms clients can subscribe to.
const (
	RoomTournament = "tournament"
	scoreboardRoom = "scoreboard:"
)

func ScoreboardRoom(matchID string) string {
	return scoreboardRoom + matchID
}

// Message types pushed to subscribers.
const (
	TypeStateUpdated      = "STATE_UPDATED"
	TypeMatchUpdated      = "MATCH_UPDATED"
	TypeScoreboardUpdated = "SCOREBOARD_UPDATED"
	TypePhaseChanged      = "PHASE_CHANGED"
)

type Message struct {
	Type    string `json:"type"`
	Room    string `json:"room"`
	Payload any    `json:"payload"`
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string
}

type outbound struct {
	room string
	data []byte
}

// Hub fans messages out to websocket clients grouped by room. Only the Run
// goroutine touches client send channels.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	done       chan struct{}

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 64),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for room, clients := range h.rooms {
			for c := range clients {
				close(c.send)
			}
			delete(h.rooms, room)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[c.room]; !ok {
				h.rooms[c.room] = make(map[*Client]struct{})
			}
			h.rooms[c.room][c] = struct{}{}
			n := len(h.rooms[c.room])
			h.mu.Unlock()
			slog.Debug("websocket client registered", "room", c.room, "clients", n)

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for c := range h.rooms[msg.room] {
				select {
				case c.send <- msg.data:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				slog.Warn("dropping slow websocket client", "room", c.room)
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
	slog.Debug("websocket client unregistered", "room", c.room, "clients", len(clients))
}

// Broadcast queues payload for every client in room. It never blocks once
// the hub has stopped.
func (h *Hub) Broadcast(room, msgType string, payload any) {
	data, err := json.Marshal(Message{Type: msgType, Room: room, Payload: payload})
	if err != nil {
		slog.Error("failed to encode websocket message", "room", room, "type", msgType, "error", err)
		return
	}
	select {
	case h.broadcast <- outbound{room: room, data: data}:
	case <-h.done:
	}
}

func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Attach registers conn in room and starts its pumps.
func (h *Hub) Attach(conn *websocket.Conn, room string) {
	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), room: room}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// Clients only listen; anything they send is read and discarded so pongs
// and close frames get processed.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read failed", "room", c.room, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Warn("websocket write failed", "room", c.room, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
