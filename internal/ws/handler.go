package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/pitchviz/internal/animation"
	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/config"
	"github.com/playmatatu/pitchviz/internal/viewer"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// Client is one connected viewer. Everything that touches its session runs
// on its loop goroutine.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	quit    chan struct{}
	once    sync.Once
	cancel  context.CancelFunc
	loop    *animation.Loop
	session *viewer.Session
}

// Hub maintains the set of active clients
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex

	instanceID string
	holder     *catalog.Holder
	cfg        *config.Config
}

func NewHub(holder *catalog.Holder, cfg *config.Config) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		instanceID: uuid.NewString(),
		holder:     holder,
		cfg:        cfg,
	}
}

// Run processes registrations until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			n := len(h.clients)
			h.mu.Unlock()
			log.Info().Str("component", "ws").Str("client", client.id).Int("clients", n).Msg("viewer connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.id]; ok && cur == client {
				delete(h.clients, client.id)
			}
			n := len(h.clients)
			h.mu.Unlock()
			client.close()
			log.Info().Str("component", "ws").Str("client", client.id).Int("clients", n).Msg("viewer disconnected")

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				client.close()
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// InstanceID identifies this server on the catalog events channel.
func (h *Hub) InstanceID() string {
	return h.instanceID
}

// ReloadAll hands cat to every connected session and returns how many
// sessions it was queued for.
func (h *Hub) ReloadAll(cat *catalog.Catalog) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, client := range h.clients {
		c := client
		if c.loop.Post(func() { c.session.Load(cat) }) {
			n++
		}
	}
	log.Info().Str("component", "ws").Int("sessions", n).Int("pitches", cat.Len()).Msg("catalog pushed to viewers")
	return n
}

// Message is the envelope for both directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type eventData struct {
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

// decodeEvent turns an inbound message into a viewer event.
func decodeEvent(msg Message) (viewer.Event, error) {
	var data eventData
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return viewer.Event{}, err
		}
	}
	return viewer.Event{Type: viewer.EventType(msg.Type), Value: data.Value, Checked: data.Checked}, nil
}

// enqueue marshals and queues an outbound message, dropping it if the
// client is slow or gone.
func (c *Client) enqueue(msgType string, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Error().Str("component", "ws").Err(err).Str("type", msgType).Msg("marshal failed")
		return
	}
	payload, err := json.Marshal(Message{Type: msgType, Data: raw})
	if err != nil {
		log.Error().Str("component", "ws").Err(err).Msg("marshal failed")
		return
	}

	select {
	case <-c.quit:
	case c.send <- payload:
	default:
		log.Warn().Str("component", "ws").Str("client", c.id).Str("type", msgType).Msg("send buffer full, dropping message")
	}
}

func (c *Client) sendError(message string) {
	c.enqueue(TypeError, map[string]string{"message": message})
}

func (c *Client) close() {
	c.once.Do(func() {
		c.cancel()
		close(c.quit)
	})
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Str("component", "ws").Str("client", c.id).Err(err).Msg("write failed")
				return
			}

		case <-c.quit:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Str("component", "ws").Str("client", c.id).Err(err).Msg("ping failed")
				return
			}
		}
	}
}

// readPump posts every control message onto the client's loop.
func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Str("component", "ws").Str("client", c.id).Err(err).Msg("unexpected close")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}
		ev, err := decodeEvent(msg)
		if err != nil {
			c.sendError("invalid " + msg.Type + " data")
			continue
		}

		if !c.loop.Post(func() {
			if err := c.session.Dispatch(ev); err != nil {
				log.Debug().Str("component", "ws").Str("client", c.id).Str("event", string(ev.Type)).Err(err).Msg("event rejected")
			}
		}) {
			return
		}
	}
}
