package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/dates"
	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/service"
)

const maxBookingsListed = 25

// BookingsHandler lists recent booking requests. It only answers in the
// operator chat.
type BookingsHandler struct {
	svc            *service.Service
	operatorChatID int64
	logger         *logrus.Logger
}

// NewBookingsHandler creates a new BookingsHandler.
func NewBookingsHandler(svc *service.Service, operatorChatID int64, logger *logrus.Logger) *BookingsHandler {
	return &BookingsHandler{svc: svc, operatorChatID: operatorChatID, logger: logger}
}

// Handle processes the /bookings [limit] command.
func (h *BookingsHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if h.operatorChatID == 0 || message.Chat.ID != h.operatorChatID {
		h.logger.WithField("chat_id", message.Chat.ID).Warn("Bookings requested outside the operator chat")
		return reply(bot, message, "❌ This command is for the KlaGear team.")
	}

	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > maxBookingsListed {
			return reply(bot, message, fmt.Sprintf("❌ Limit must be a number from 1 to %d.", maxBookingsListed))
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookings, err := h.svc.RecentBookings(ctx, limit)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		return reply(bot, message, "No booking requests yet.")
	}
	return reply(bot, message, formatBookings(bookings))
}

func formatBookings(bookings []*models.BookingRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 *Latest %d booking request(s)*\n\n", len(bookings))
	for _, b := range bookings {
		ref := b.Reference
		if len(ref) > 8 {
			ref = ref[:8]
		}
		fmt.Fprintf(&sb, "• `%s` *%s* %s\n", ref, escape(b.CustomerName), escape(b.CustomerPhone))
		fmt.Fprintf(&sb, "  %s → %s (%d day(s)), %s via %s, %s\n",
			dates.Format(b.StartDate), dates.Format(b.EndDate), b.Days,
			formatAmount(b.Totals.Total), b.Channel, b.Status)
	}
	return sb.String()
}
