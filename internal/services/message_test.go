package services_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"gearrent/internal/domain"
	"gearrent/internal/repos"
	"gearrent/internal/services"
)

func TestFormatRupiah(t *testing.T) {
	for n, want := range map[int64]string{
		0:       "Rp0",
		5000:    "Rp5.000",
		60000:   "Rp60.000",
		1250000: "Rp1.250.000",
	} {
		if got := services.FormatRupiah(n); got != want {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatOrderMessage(t *testing.T) {
	seed := repos.SeedProducts()
	o := domain.Order{
		RentalDate: "2025-03-01",
		Duration:   3,
		TotalPrice: 195000,
		Renter:     domain.UserDetails{Name: "Sari", Campus: "UMP", WhatsApp: "0899"},
		Lines: []domain.CartLine{
			{Product: seed[0], Quantity: 2},
			{Product: seed[11], Quantity: 1, SelectedSize: "L", SelectedColor: "Merah"},
		},
	}
	msg := services.FormatOrderMessage(o, domain.DefaultPricing)

	for _, want := range []string{
		"*Halo Mamas Outdoor! Saya mau sewa dong.*\n\n",
		"Nama: Sari\nKampus: UMP\nWA: 0899\nTanggal Ambil: 2025-03-01\nLama Sewa: 3 Hari\n\n",
		"*List Alat:*\n1. Tenda Great Outdoor Java 4 Pro (2x) - Rp170.000\n",
		"2. Jaket Gunung Consina Alpine [Merah/L] (1x) - Rp35.000",
		"\n\n*Total Estimasi: Rp195.000*",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestWhatsAppChannel_Link(t *testing.T) {
	d, err := services.WhatsAppChannel{Number: "628111"}.Send(context.Background(), domain.Order{}, "Halo & salam 100%")
	if err != nil {
		t.Fatal(err)
	}
	u, err := url.Parse(d.URL)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "wa.me" || u.Path != "/628111" {
		t.Fatalf("bad link: %s", d.URL)
	}
	if u.Query().Get("text") != "Halo & salam 100%" {
		t.Fatalf("text not round-tripped: %q", u.Query().Get("text"))
	}
	if strings.Contains(d.URL, "+") {
		t.Fatalf("spaces should be percent-encoded: %s", d.URL)
	}

	if _, err := (services.WhatsAppChannel{}).Send(context.Background(), domain.Order{}, "x"); err == nil {
		t.Fatal("missing number should fail")
	}
}
