package livefeed

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dashmart/console"
	"dashmart/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Frame types sent on the ops feed.
const (
	FrameSnapshot = "snapshot"
)

// Frame is what operator screens receive: a queue snapshot on connect, then
// one frame per order event.
type Frame struct {
	Type  string               `json:"type"`
	Queue []console.QueueEntry `json:"queue,omitempty"`
	Order *models.Order        `json:"order,omitempty"`
}

// EncodeEvent renders an order event as a feed frame.
func EncodeEvent(evt models.OrderEvent) ([]byte, error) {
	order := evt.Order
	return json.Marshal(Frame{Type: evt.Type, Order: &order})
}

// QueueSource supplies the pending queue for the connect-time snapshot.
type QueueSource interface {
	Queue() []console.QueueEntry
}

// OpsHandler serves GET /ws/ops.
func OpsHandler(hub *Hub, queue QueueSource) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn: conn,
			Send: make(chan []byte, 256),
			Room: RoomOps,
		}

		// Join before reading the queue so no event falls between the
		// snapshot and the live stream.
		hub.Join(client)
		data, err := json.Marshal(Frame{Type: FrameSnapshot, Queue: queue.Queue()})
		if err != nil {
			log.Println("ops snapshot:", err)
			data = []byte(`{"type":"snapshot"}`)
		}
		hub.Ready(client, data)
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the client going away; the feed is one-way.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
