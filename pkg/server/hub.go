package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 16
)

// Message types pushed over the websocket
const (
	MessageTypePreview = "preview"
	MessageTypeError   = "error"
	MessageTypeRefresh = "refresh"
)

// WSMessage is the websocket wire format in both directions
type WSMessage struct {
	Type      string    `json:"type"`
	Snapshot  *Snapshot `json:"snapshot,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func previewMessage(snap Snapshot) WSMessage {
	return WSMessage{Type: MessageTypePreview, Snapshot: &snap, Timestamp: time.Now()}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the editor is served from a different origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// hub fans preview messages out to every connected browser
type hub struct {
	clients    map[*wsClient]bool
	broadcast  chan WSMessage
	register   chan *wsClient
	unregister chan *wsClient
	direct     chan addressed
	done       <-chan struct{}
	logger     *slog.Logger
}

type addressed struct {
	client *wsClient
	msg    WSMessage
}

type wsClient struct {
	hub  *hub
	conn *websocket.Conn
	send chan WSMessage
}

// newHub returns a hub that stops when ctx is done
func newHub(ctx context.Context, logger *slog.Logger) *hub {
	return &hub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan WSMessage),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		direct:     make(chan addressed),
		done:       ctx.Done(),
		logger:     logger,
	}
}

// run owns the client set until the hub stops
func (h *hub) run() {
	for {
		select {
		case <-h.done:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.logger.Debug("websocket client connected", "clients", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Debug("websocket client disconnected", "clients", len(h.clients))
			}

		case a := <-h.direct:
			if _, ok := h.clients[a.client]; ok {
				select {
				case a.client.send <- a.msg:
				default:
				}
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// too slow to keep up; it reconnects and gets a fresh snapshot
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// publish hands msg to the hub, or drops it once the hub has stopped
func (h *hub) publish(msg WSMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func (h *hub) join(c *wsClient) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *hub) leave(c *wsClient) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.hub.logger.Debug("websocket write failed", "err", err)
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

// readPump handles refresh requests until the connection drops
func (c *wsClient) readPump(snapshot func() Snapshot) {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read failed", "err", err)
			}
			return
		}

		reply := WSMessage{Type: MessageTypeError, Error: "unknown message type: " + msg.Type, Timestamp: time.Now()}
		if msg.Type == MessageTypeRefresh {
			reply = previewMessage(snapshot())
		}
		c.hub.publishTo(c, reply)
	}
}

// publishTo sends msg to one client through the hub, which owns the
// client's send channel
func (h *hub) publishTo(c *wsClient, msg WSMessage) {
	select {
	case h.direct <- addressed{client: c, msg: msg}:
	case <-h.done:
	}
}
