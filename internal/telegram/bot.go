package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/handoff"
	"github.com/Kerhoff/KlaGear/internal/models"
)

// Bot wraps the Telegram bot API
type Bot struct {
	api            *tgbotapi.BotAPI
	logger         *logrus.Logger
	router         *Router
	operatorChatID int64
}

// NewBot creates a new Telegram bot instance. Booking requests are posted to
// operatorChatID; zero disables the notifications.
func NewBot(token string, operatorChatID int64, logger *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	return newBot(api, operatorChatID, logger), nil
}

func newBot(api *tgbotapi.BotAPI, operatorChatID int64, logger *logrus.Logger) *Bot {
	logger.Infof("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:            api,
		logger:         logger,
		router:         NewRouter(logger),
		operatorChatID: operatorChatID,
	}
}

// Start starts the bot with long polling
func (b *Bot) Start(ctx context.Context) error {
	// Delete webhook if exists and use polling
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started with long polling")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Stopping bot...")
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			go b.handleUpdate(update)
		}
	}
}

// handleUpdate processes incoming updates
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("Panic in update handler: %v", r)
		}
	}()

	if update.Message != nil {
		b.router.HandleMessage(b.api, update.Message)
	} else if update.CallbackQuery != nil {
		b.router.HandleCallbackQuery(b.api, update.CallbackQuery)
	}
}

// SendMessage sends a message to a chat
func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := b.api.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// NotifyBooking posts a new booking request to the operator chat
func (b *Bot) NotifyBooking(ctx context.Context, booking *models.BookingRequest) error {
	if b.operatorChatID == 0 {
		return nil
	}

	text := fmt.Sprintf("📥 *New booking request* via %s\n\n%s",
		booking.Channel,
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, handoff.BookingMessage(booking)))
	if err := b.SendMessage(b.operatorChatID, text); err != nil {
		return fmt.Errorf("failed to notify operator: %w", err)
	}

	b.logger.WithFields(logrus.Fields{
		"reference": booking.Reference,
		"chat_id":   b.operatorChatID,
	}).Debug("Operator notified")
	return nil
}

// RegisterCommand registers a command handler on the router
func (b *Bot) RegisterCommand(command string, handler CommandHandler) {
	b.router.RegisterCommand(command, handler)
}

// RegisterCallback registers an inline-button handler on the router
func (b *Bot) RegisterCallback(prefix string, handler CallbackHandler) {
	b.router.RegisterCallback(prefix, handler)
}
