// Package livefeed pushes order events to connected operator screens.
package livefeed

import (
	"sync"

	"github.com/gorilla/websocket"
)

// RoomOps receives every order event.
const RoomOps = "ops"

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	Room string

	// held clients queue broadcasts in backlog until Ready.
	held    bool
	backlog [][]byte
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type readyMsg struct {
	c     *Client
	first []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	ready      chan readyMsg
	quit       chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		ready:      make(chan readyMsg),
		quit:       make(chan struct{}),
	}
}

// Run owns the room table until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.dropLocked(c)
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				if c.held {
					if len(c.backlog) >= cap(c.Send) {
						h.dropLocked(c)
						continue
					}
					c.backlog = append(c.backlog, m.Data)
					continue
				}
				h.deliverLocked(c, m.Data)
			}
			h.mu.Unlock()

		case m := <-h.ready:
			h.mu.Lock()
			if h.rooms[m.c.Room][m.c] {
				m.c.held = false
				pending := m.c.backlog
				m.c.backlog = nil
				if h.deliverLocked(m.c, m.first) {
					for _, data := range pending {
						if !h.deliverLocked(m.c, data) {
							break
						}
					}
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for _, conns := range h.rooms {
				for c := range conns {
					h.dropLocked(c)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// deliverLocked reports false when c was dropped as a slow reader.
func (h *Hub) deliverLocked(c *Client, data []byte) bool {
	select {
	case c.Send <- data:
		return true
	default:
		h.dropLocked(c)
		return false
	}
}

func (h *Hub) dropLocked(c *Client) {
	conns := h.rooms[c.Room]
	if !conns[c] {
		return
	}
	delete(conns, c)
	c.backlog = nil
	close(c.Send)
	if len(conns) == 0 {
		delete(h.rooms, c.Room)
	}
}

// Stop ends Run and closes every client's Send channel.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.quit:
		close(c.Send)
	}
}

// Join registers c without delivering anything to it. Broadcasts that arrive
// in the meantime are held back and follow the first frame passed to Ready.
func (h *Hub) Join(c *Client) {
	c.held = true
	h.Register(c)
}

// Ready sends first to a joined client, then everything held for it.
func (h *Hub) Ready(c *Client, first []byte) {
	select {
	case h.ready <- readyMsg{c: c, first: first}:
	case <-h.quit:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// Broadcast queues data for every client in room. It returns once Run has
// taken the message or the hub is stopped.
func (h *Hub) Broadcast(room string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{Room: room, Data: data}:
	case <-h.quit:
	}
}

// Clients reports how many connections are in room.
func (h *Hub) Clients(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}
