package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/service"
)

// AvailableHandler handles /available <id> <start> <end>.
type AvailableHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewAvailableHandler creates a new AvailableHandler.
func NewAvailableHandler(svc *service.Service, logger *logrus.Logger) *AvailableHandler {
	return &AvailableHandler{svc: svc, logger: logger}
}

// Handle processes the /available command.
func (h *AvailableHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) != 3 {
		return reply(bot, message, "❌ Usage: `/available <id> <YYYY-MM-DD> <YYYY-MM-DD>`")
	}

	res, err := h.svc.Availability(args[0], args[1], args[2])
	if err != nil {
		return replyServiceError(bot, message, err)
	}
	g, err := h.svc.GetGear(args[0])
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":  message.Chat.ID,
		"gear_id":  g.ID,
		"bookable": res.Bookable,
	}).Info("Availability checked")

	return reply(bot, message, formatAvailability(g, args[1], args[2], res))
}

func formatAvailability(g models.GearItem, start, end string, res *service.AvailabilityResult) string {
	name := escape(g.Name)
	switch {
	case !res.Available:
		return fmt.Sprintf("🚫 *%s* is not available for hire right now.", name)
	case res.HasConflict:
		text := fmt.Sprintf("📅 *%s* is booked on %s.", name, strings.Join(res.ConflictDates, ", "))
		if res.NextFreeDate != "" {
			text += fmt.Sprintf("\nFree again from %s.", res.NextFreeDate)
		}
		return text
	default:
		return fmt.Sprintf("✅ *%s* is free from %s to %s (%d days).\nAdd it with `/add %s`.", name, start, end, res.Days, g.ID)
	}
}
