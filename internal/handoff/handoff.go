// Package handoff builds the links and payloads that pass a booking request to
// channels outside this service: WhatsApp, phone, email and the deposit
// payment widget.
package handoff

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Kerhoff/KlaGear/internal/dates"
	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/pricing"
)

// Contact is the business's inbound contact points
type Contact struct {
	WhatsApp string
	Phone    string
	Email    string
}

// Links holds one URL per handoff channel
type Links struct {
	WhatsApp string `json:"whatsapp,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// PaymentIntent carries what the external deposit widget needs to open a
// checkout. The widget itself is driven by the browser.
type PaymentIntent struct {
	TxRef         string `json:"tx_ref"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Description   string `json:"description"`
	RedirectURL   string `json:"redirect_url,omitempty"`
}

// digits keeps only 0-9 from a phone number.
func digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppURL returns a wa.me click-to-chat link prefilled with text.
func WhatsAppURL(phone, text string) string {
	u := "https://wa.me/" + digits(phone)
	if text != "" {
		u += "?text=" + url.QueryEscape(text)
	}
	return u
}

// TelURL returns a tel: link keeping a leading plus sign.
func TelURL(phone string) string {
	if strings.HasPrefix(strings.TrimSpace(phone), "+") {
		return "tel:+" + digits(phone)
	}
	return "tel:" + digits(phone)
}

// MailtoURL returns a mailto: link with subject and body.
func MailtoURL(to, subject, body string) string {
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if body != "" {
		q.Set("body", body)
	}
	u := "mailto:" + to
	if enc := q.Encode(); enc != "" {
		// mailto readers expect %20 rather than + for spaces
		u += "?" + strings.ReplaceAll(enc, "+", "%20")
	}
	return u
}

// BookingMessage renders a plain-text summary of a booking request.
func BookingMessage(b *models.BookingRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking request %s\n", b.Reference)
	fmt.Fprintf(&sb, "Name: %s\n", b.CustomerName)
	fmt.Fprintf(&sb, "Phone: %s\n", b.CustomerPhone)
	if b.CustomerEmail != "" {
		fmt.Fprintf(&sb, "Email: %s\n", b.CustomerEmail)
	}
	if b.Company != "" {
		fmt.Fprintf(&sb, "Company: %s\n", b.Company)
	}
	fmt.Fprintf(&sb, "Dates: %s to %s (%d days)\n", dates.Format(b.StartDate), dates.Format(b.EndDate), b.Days)
	sb.WriteString("Gear:\n")
	for _, it := range b.Items {
		fmt.Fprintf(&sb, "- %d x %s (%s/day)\n", it.Quantity, it.GearName, pricing.FormatUGX(float64(it.PricePerDay)))
	}
	fmt.Fprintf(&sb, "Total: %s\n", pricing.FormatUGX(float64(b.Totals.Total)))
	fmt.Fprintf(&sb, "Deposit: %s", pricing.FormatUGX(float64(b.Totals.Deposit)))
	if b.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", b.Notes)
	}
	return sb.String()
}

// BuildLinks returns the handoff link for every configured contact point.
func BuildLinks(c Contact, b *models.BookingRequest) Links {
	msg := BookingMessage(b)
	var l Links
	if c.WhatsApp != "" {
		l.WhatsApp = WhatsAppURL(c.WhatsApp, msg)
	}
	if c.Phone != "" {
		l.Phone = TelURL(c.Phone)
	}
	if c.Email != "" {
		l.Email = MailtoURL(c.Email, "Booking request "+b.Reference, msg)
	}
	return l
}

// NewPaymentIntent prepares the deposit checkout for a booking request.
func NewPaymentIntent(b *models.BookingRequest, redirectURL string) PaymentIntent {
	return PaymentIntent{
		TxRef:         b.Reference,
		Amount:        b.Totals.Deposit,
		Currency:      pricing.Currency,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Description:   fmt.Sprintf("Deposit for booking %s", b.Reference),
		RedirectURL:   redirectURL,
	}
}
