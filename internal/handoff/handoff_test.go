package handoff

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Kerhoff/KlaGear/internal/models"
)

func booking() *models.BookingRequest {
	return &models.BookingRequest{
		Reference:     "3f2a",
		CustomerName:  "Amara N.",
		CustomerPhone: "+256 700 123456",
		CustomerEmail: "amara@example.com",
		StartDate:     time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC),
		Days:          4,
		Items: []models.BookingItem{
			{GearID: "fx6", GearName: "Sony FX6", Quantity: 1, PricePerDay: 350000},
		},
		Totals: models.QuoteTotals{Total: 1734600, Deposit: 867300},
	}
}

func TestWhatsAppURL(t *testing.T) {
	got := WhatsAppURL("+256 (700) 123-456", "Hi & hello")
	want := "https://wa.me/256700123456?text=Hi+%26+hello"
	if got != want {
		t.Errorf("WhatsAppURL() = %q, want %q", got, want)
	}

	if got := WhatsAppURL("0700123456", ""); got != "https://wa.me/0700123456" {
		t.Errorf("WhatsAppURL() without text = %q", got)
	}
}

func TestTelURL(t *testing.T) {
	if got := TelURL("+256 700 123456"); got != "tel:+256700123456" {
		t.Errorf("TelURL() = %q", got)
	}
	if got := TelURL("0700-123456"); got != "tel:0700123456" {
		t.Errorf("TelURL() = %q", got)
	}
}

func TestMailtoURL(t *testing.T) {
	got := MailtoURL("bookings@example.com", "Booking request", "two words")
	if !strings.HasPrefix(got, "mailto:bookings@example.com?") {
		t.Fatalf("MailtoURL() = %q", got)
	}
	if strings.Contains(got, "+") {
		t.Errorf("MailtoURL() = %q, spaces should be %%20", got)
	}
	if !strings.Contains(got, "subject=Booking%20request") {
		t.Errorf("MailtoURL() = %q, missing subject", got)
	}
}

func TestBookingMessage(t *testing.T) {
	msg := BookingMessage(booking())

	for _, want := range []string{
		"Booking request 3f2a",
		"Dates: 2025-12-14 to 2025-12-17 (4 days)",
		"- 1 x Sony FX6 (UGX 350,000/day)",
		"Deposit: UGX 867,300",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("BookingMessage() missing %q in:\n%s", want, msg)
		}
	}
}

func TestBuildLinks(t *testing.T) {
	l := BuildLinks(Contact{WhatsApp: "+256700000000", Email: "hire@example.com"}, booking())

	if l.Phone != "" {
		t.Errorf("Phone link = %q, want empty when no phone is configured", l.Phone)
	}

	u, err := url.Parse(l.WhatsApp)
	if err != nil {
		t.Fatalf("WhatsApp link does not parse: %v", err)
	}
	if !strings.Contains(u.Query().Get("text"), "Sony FX6") {
		t.Errorf("WhatsApp text = %q", u.Query().Get("text"))
	}
	if !strings.HasPrefix(l.Email, "mailto:hire@example.com?") {
		t.Errorf("Email link = %q", l.Email)
	}
}

func TestNewPaymentIntent(t *testing.T) {
	p := NewPaymentIntent(booking(), "https://example.com/thanks")
	if p.TxRef != "3f2a" || p.Amount != 867300 || p.Currency != "UGX" {
		t.Errorf("NewPaymentIntent() = %+v", p)
	}
}
