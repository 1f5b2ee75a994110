// Package stream broadcasts party frames and emitter events to websocket
// clients as JSON, so a browser or a remote tool can draw a scene simulated
// elsewhere.
//
// A Hub is both a party.Renderer and a party.EventSink:
//
//	hub := stream.NewHub(stream.Options{})
//	scene.SetRenderer(hub)
//	scene.SetEventSink(hub)
//	http.Handle("/ws", hub)
//
// Every message is an envelope {"type": ..., "data": ...}. Frames carry type
// "frame" and a [FrameData]; lifecycle events carry type "event" and an
// [EventData].
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/party"
)

// Message types.
const (
	TypeFrame = "frame"
	TypeEvent = "event"
)

// Message is the envelope of every websocket message.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Particle is the wire form of one presented particle.
type Particle struct {
	ID       uint64     `json:"id"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Rotation [3]float64 `json:"rotation"`
	Size     float64    `json:"size"`
	Color    string     `json:"color"`
	Opacity  float64    `json:"opacity"`
	Shape    string     `json:"shape"`
}

// FrameData is the payload of a frame message.
type FrameData struct {
	Frame     int        `json:"frame"`
	Particles []Particle `json:"particles"`
}

// EventData is the payload of an event message.
type EventData struct {
	Type      string `json:"type"`
	Emitter   uint64 `json:"emitter"`
	Particles int    `json:"particles"`
	Loops     int    `json:"loops"`
}

// Options configure a Hub.
type Options struct {
	// SendBuffer is the number of messages queued per client before new
	// ones are dropped for it. Defaults to 16.
	SendBuffer int
	// CheckOrigin is passed to the websocket upgrader. Nil accepts any
	// origin.
	CheckOrigin func(r *http.Request) bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to connected clients. Begin, RenderParticle, End and
// EmitEvent must be called from one goroutine (the scene's); ServeHTTP and
// Clients are safe for concurrent use.
type Hub struct {
	upgrader   websocket.Upgrader
	sendBuffer int

	mu      sync.Mutex
	clients map[*client]struct{}

	frame  FrameData
	shapes *party.ElementCache[string]
}

// NewHub creates a hub with no clients.
func NewHub(opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 16
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		sendBuffer: opts.SendBuffer,
		clients:    make(map[*client]struct{}),
		shapes:     party.NewElementCache[string](),
	}
}

// ServeHTTP upgrades the request to a websocket and streams to it until the
// client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		party.Logger().Warn("stream: upgrade failed", slog.Any("error", err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, h.sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	party.Logger().Info("stream: client connected", slog.String("remote", conn.RemoteAddr().String()))

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards client input and unregisters the client once its
// connection fails.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			party.Logger().Warn("stream: write failed", slog.Any("error", err))
			return
		}
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	party.Logger().Info("stream: client disconnected")
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Begin starts collecting a frame.
func (h *Hub) Begin() {
	h.shapes.Begin()
	h.frame.Frame++
	h.frame.Particles = h.frame.Particles[:0]
}

// RenderParticle adds p to the frame.
func (h *Hub) RenderParticle(p party.Snapshot, opts *party.RendererOptions) {
	shape := h.shapes.GetOrCreate(p.ID, func() string {
		return opts.PickShape().Name
	})
	c, a := opts.Shade(p)
	h.frame.Particles = append(h.frame.Particles, Particle{
		ID:       uint64(p.ID),
		X:        p.Location.X(),
		Y:        p.Location.Y(),
		Rotation: p.Rotation,
		Size:     p.Size,
		Color:    c.Hex(),
		Opacity:  a,
		Shape:    shape,
	})
}

// End broadcasts the frame.
func (h *Hub) End() {
	h.shapes.Sweep(nil)
	h.broadcast(TypeFrame, &h.frame)
}

// EmitEvent broadcasts an emitter lifecycle event.
func (h *Hub) EmitEvent(e party.EmitterEvent) {
	h.broadcast(TypeEvent, EventData{
		Type:      e.Type.String(),
		Emitter:   uint64(e.EmitterID),
		Particles: e.Particles,
		Loops:     e.Loops,
	})
}

func (h *Hub) broadcast(typ string, v any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return
	}
	msg, err := encode(typ, v)
	if err != nil {
		party.Logger().Warn("stream: encode failed", slog.String("type", typ), slog.Any("error", err))
		return
	}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow client; it gets the next frame instead.
		}
	}
}

func encode(typ string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: typ, Data: data})
}
