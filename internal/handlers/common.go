package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/pricing"
	"github.com/Kerhoff/KlaGear/internal/service"
)

// maxListed caps how many items a listing reply shows.
const maxListed = 10

// reply sends a Markdown message to the chat the command came from.
func reply(bot *tgbotapi.BotAPI, message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// replyServiceError turns a coded service error into a user-facing reply.
// Errors without a code are returned for the router to log.
func replyServiceError(bot *tgbotapi.BotAPI, message *tgbotapi.Message, err error) error {
	var serr *service.Error
	if !errors.As(err, &serr) {
		return err
	}
	return reply(bot, message, "❌ "+escape(serr.Error()))
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func chatKey(message *tgbotapi.Message) string {
	return strconv.FormatInt(message.Chat.ID, 10)
}

// gearLine renders one catalog item as a bullet.
func gearLine(g models.GearItem) string {
	line := fmt.Sprintf("• *%s* (`%s`) %s/day", escape(g.Name), g.ID, formatAmount(g.PricePerDay))
	if g.Featured {
		line += " ⭐"
	}
	if !g.Available {
		line += " _unavailable_"
	}
	return line
}

func formatAmount(amount int64) string {
	return pricing.FormatUGX(float64(amount))
}

func gearList(title string, gear []models.GearItem) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for i, g := range gear {
		if i == maxListed {
			fmt.Fprintf(&sb, "\n_…and %d more. Narrow it down with /gear <search>._", len(gear)-maxListed)
			break
		}
		sb.WriteString(gearLine(g))
		sb.WriteByte('\n')
	}
	return sb.String()
}
