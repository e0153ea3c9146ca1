// Package receipts renders printable order receipts with a tracking QR code.
package receipts

import (
	"bytes"
	"fmt"
	"strings"

	"dashmart/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// TrackingURL is what the receipt QR code points at.
func TrackingURL(baseURL, orderID string) string {
	return strings.TrimRight(baseURL, "/") + "/track/" + orderID
}

// QR returns a PNG QR code for the order's tracking page.
func QR(baseURL, orderID string, size int) ([]byte, error) {
	return qrcode.Encode(TrackingURL(baseURL, orderID), qrcode.Medium, size)
}

// Render builds the receipt PDF for order.
func Render(order models.Order, store models.DarkStore, baseURL string) ([]byte, error) {
	qrPNG, err := QR(baseURL, order.ID, 256)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, "DashMart Receipt", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Order #%s", order.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, order.Timestamp.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%s (%s), %s", store.Name, order.StoreID, store.Address), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Status: %s  |  ETA %d min", order.Status, order.ETA), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Items table
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, it := range order.Items {
		name := it.Name
		if it.Unit != "" {
			name += " (" + it.Unit + ")"
		}
		pdf.CellFormat(90, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("$%.2f", it.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("$%.2f", it.LineTotal()), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(140, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 9, fmt.Sprintf("$%.2f", order.Total), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 20, pdf.GetY(), 40, 40, false, imageOpts, 0, "")
	pdf.SetXY(65, pdf.GetY()+15)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Scan to track your delivery", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
