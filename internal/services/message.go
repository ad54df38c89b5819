package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gearrent/internal/domain"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders n with Indonesian digit grouping, e.g. Rp60.000.
func FormatRupiah(n int64) string {
	return idPrinter.Sprintf("Rp%d", n)
}

// FormatOrderMessage builds the chat text handed to the renter's messenger.
func FormatOrderMessage(o domain.Order, pr domain.Pricing) string {
	var b strings.Builder
	b.WriteString("*Halo Mamas Outdoor! Saya mau sewa dong.*\n\n")

	r := o.Renter
	fmt.Fprintf(&b, "*Data Penyewa:*\nNama: %s\nKampus: %s\nWA: %s\nTanggal Ambil: %s\nLama Sewa: %d Hari\n\n",
		r.Name, r.Campus, r.WhatsApp, o.RentalDate, o.Duration)

	b.WriteString("*List Alat:*\n")
	for i, l := range o.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		name := l.Product.Name
		if sel := selectionLabel(l); sel != "" {
			name += " [" + sel + "]"
		}
		sub := pr.UnitPrice(l.Product, o.Duration) * int64(l.Quantity)
		fmt.Fprintf(&b, "%d. %s (%dx) - %s", i+1, name, l.Quantity, FormatRupiah(sub))
	}
	fmt.Fprintf(&b, "\n\n*Total Estimasi: %s*", FormatRupiah(o.TotalPrice))
	return b.String()
}

func selectionLabel(l domain.CartLine) string {
	switch {
	case l.SelectedSize != "" && l.SelectedColor != "":
		return l.SelectedColor + "/" + l.SelectedSize
	case l.SelectedSize != "":
		return l.SelectedSize
	}
	return l.SelectedColor
}

// Dispatch is what the channel produced for an order.
type Dispatch struct {
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// Channel hands a composed order message to the rental admin.
type Channel interface {
	Send(ctx context.Context, o domain.Order, msg string) (Dispatch, error)
}

// WhatsAppChannel builds a click-to-chat link; the client opens it.
type WhatsAppChannel struct {
	Number string
}

func (w WhatsAppChannel) Send(_ context.Context, _ domain.Order, msg string) (Dispatch, error) {
	if w.Number == "" {
		return Dispatch{}, fmt.Errorf("whatsapp: no destination number")
	}
	u := "https://wa.me/" + w.Number + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return Dispatch{Message: msg, URL: u}, nil
}
