package receipts

import (
	"log"
	"net/http"

	"dashmart/models"
	"dashmart/orders"

	"github.com/julienschmidt/httprouter"
)

// OrderLookup finds an order by id.
type OrderLookup interface {
	Get(id string) (models.Order, error)
}

// ReceiptHandler serves GET /api/orders/:id/receipt as a PDF download.
func ReceiptHandler(lookup OrderLookup, store models.DarkStore, baseURL string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		order, err := lookup.Get(ps.ByName("id"))
		if err != nil {
			orders.WriteError(w, err)
			return
		}

		pdf, err := Render(order, store, baseURL)
		if err != nil {
			log.Printf("receipt for %s: %v", order.ID, err)
			http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.ID+".pdf")
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	}
}

// QRHandler serves GET /api/orders/:id/qr as a PNG.
func QRHandler(lookup OrderLookup, baseURL string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		order, err := lookup.Get(ps.ByName("id"))
		if err != nil {
			orders.WriteError(w, err)
			return
		}

		png, err := QR(baseURL, order.ID, 256)
		if err != nil {
			http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}
}
