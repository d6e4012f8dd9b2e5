package service

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/faideclothing/faide-store/internal/cart"
)

// BuildWhatsAppMessage renders the manual order text sent to the store's
// WhatsApp number. The layout is what the store staff parse by eye, so the
// line format stays stable.
func BuildWhatsAppMessage(items []cart.LineItem, totalCents int64) string {
	var b strings.Builder

	b.WriteString("Hi FAIDE, I want to place an order:\n\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d) %s | Size: %s | Color: %s | Qty: %d | R%.2f\n",
			i+1, item.Name, item.Size, item.Color, item.Quantity,
			float64(item.LineTotalCents())/100)
	}
	fmt.Fprintf(&b, "\nTOTAL: R%.2f\n\n", float64(totalCents)/100)
	b.WriteString("Name:\n(Type here)\n\n")
	b.WriteString("Delivery address:\n(Type here)")

	return b.String()
}

// WhatsAppURL builds a wa.me deep link. QueryEscape encodes spaces as "+",
// which WhatsApp renders literally, so they become %20 instead.
func WhatsAppURL(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + number + "?text=" + encoded
}

func (s *Service) whatsAppLink(c echo.Context) (string, error) {
	ct, _, err := s.loadCart(c)
	if err != nil {
		return "", err
	}
	if ct.IsEmpty() {
		return "", nil
	}

	total, _ := ct.Totals()
	return WhatsAppURL(s.config.Checkout.WhatsAppNumber, BuildWhatsAppMessage(ct.Items(), total)), nil
}

func (s *Service) handleWhatsAppLink(c echo.Context) error {
	link, err := s.whatsAppLink(c)
	if err != nil {
		slog.Error("failed to build whatsapp link", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load cart")
	}
	if link == "" {
		return errorJSON(c, http.StatusBadRequest, "Cart is empty")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": link})
}

// handleWhatsAppQR renders the deep link as a QR code so a desktop visitor
// can continue checkout on their phone.
func (s *Service) handleWhatsAppQR(c echo.Context) error {
	link, err := s.whatsAppLink(c)
	if err != nil {
		slog.Error("failed to build whatsapp link", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load cart")
	}
	if link == "" {
		return errorJSON(c, http.StatusBadRequest, "Cart is empty")
	}

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		slog.Error("failed to encode qr code", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to generate QR code")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// handleOrderFormPDF produces a printable order form mirroring the WhatsApp
// message, for visitors who would rather email or bring it in store.
func (s *Service) handleOrderFormPDF(c echo.Context) error {
	ct, _, err := s.loadCart(c)
	if err != nil {
		slog.Error("failed to load cart", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load cart")
	}
	if ct.IsEmpty() {
		return errorJSON(c, http.StatusBadRequest, "Cart is empty")
	}

	total, _ := ct.Totals()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "FAIDE Order Form")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	for i, item := range ct.Items() {
		line := fmt.Sprintf("%d) %s | Size: %s | Color: %s | Qty: %d | R%.2f",
			i+1, item.Name, item.Size, item.Color, item.Quantity,
			float64(item.LineTotalCents())/100)
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("TOTAL: R%.2f", float64(total)/100))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Name:")
	pdf.Ln(12)
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+120, pdf.GetY())
	pdf.Ln(8)
	pdf.Cell(0, 7, "Delivery address:")
	pdf.Ln(12)
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+120, pdf.GetY())
	pdf.Ln(8)
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+120, pdf.GetY())

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		slog.Error("failed to render order form pdf", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to generate order form")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="faide-order.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
