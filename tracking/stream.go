package tracking

import (
	"context"
	"log"
	"net/http"
	"time"

	"dashmart/metrics"
	"dashmart/models"
	"dashmart/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// OrderLookup reads the authoritative order record.
type OrderLookup interface {
	Get(id string) (models.Order, error)
}

// StreamFrame is what the tracking socket sends. OrderStatus is the
// operator-driven status and may disagree with DisplayStatus.
type StreamFrame struct {
	Frame
	OrderStatus models.OrderStatus `json:"orderStatus"`
}

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// StreamHandler serves GET /ws/track/:id. Each connection owns its own
// simulator, which stops when the client goes away.
func StreamHandler(lookup OrderLookup, interval time.Duration) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		orderID := ps.ByName("id")
		if _, err := lookup.Get(orderID); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("tracking upgrade:", err)
			return
		}
		defer conn.Close()

		metrics.TrackingSessions.Inc()
		defer metrics.TrackingSessions.Dec()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// the read loop only exists to notice the client leaving
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		sim := NewSimulator(orderID)
		send := func(f Frame) bool {
			out := StreamFrame{Frame: f}
			if order, err := lookup.Get(orderID); err == nil {
				out.OrderStatus = order.Status
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(out); err != nil {
				cancel()
				return false
			}
			return true
		}

		if !send(sim.Frame()) {
			return
		}
		err = sim.Run(ctx, interval, func(f Frame) { send(f) })
		if err == nil {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "delivered"))
		}
	}
}
