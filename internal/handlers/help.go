package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// HelpHandler handles the /help command
type HelpHandler struct {
	logger *logrus.Logger
}

func NewHelpHandler(logger *logrus.Logger) *HelpHandler {
	return &HelpHandler{logger: logger}
}

func (h *HelpHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	helpText := `📚 *KlaGear Help*

*Catalog:*
• /gear [search] - Browse or search gear
• /categories - List categories
• /recommend <id> - Gear that goes well with an item
• /compare <id> <id> [id] [id] - Compare 2 to 4 items

*Dates:*
• /available <id> <YYYY-MM-DD> <YYYY-MM-DD> - Check availability

*Quote:*
• /add <id> [qty] - Add to your quote
• /remove <id> - Remove from your quote
• /quote [days] - Show your quote
• /clear - Empty your quote

*Saved:*
• /save <id> - Save or unsave an item
• /saved - Show saved items

_7+ day rentals get 2 days free. 3+ different items get 10% off._`

	msg := tgbotapi.NewMessage(message.Chat.ID, helpText)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send help message: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent help message")

	return nil
}
