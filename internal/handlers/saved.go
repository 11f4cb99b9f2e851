package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/service"
	"github.com/Kerhoff/KlaGear/internal/store"
)

// SaveHandler toggles an item in the chat's wishlist.
type SaveHandler struct {
	svc       *service.Service
	wishlists store.Store[store.Wishlist]
	logger    *logrus.Logger
}

// NewSaveHandler creates a new SaveHandler.
func NewSaveHandler(svc *service.Service, wishlists store.Store[store.Wishlist], logger *logrus.Logger) *SaveHandler {
	return &SaveHandler{svc: svc, wishlists: wishlists, logger: logger}
}

// Handle processes the /save command.
func (h *SaveHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) != 1 {
		return reply(bot, message, "❌ Usage: `/save <id>`")
	}

	g, err := h.svc.GetGear(args[0])
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	var added bool
	h.wishlists.Update(chatKey(message), func(w store.Wishlist, _ bool) (store.Wishlist, bool) {
		w, added = w.Toggle(g.ID)
		return w, true
	})

	if added {
		return reply(bot, message, fmt.Sprintf("💾 Saved *%s*.", escape(g.Name)))
	}
	return reply(bot, message, fmt.Sprintf("Removed *%s* from saved items.", escape(g.Name)))
}

// SavedHandler lists the chat's wishlist.
type SavedHandler struct {
	svc       *service.Service
	wishlists store.Store[store.Wishlist]
	logger    *logrus.Logger
}

// NewSavedHandler creates a new SavedHandler.
func NewSavedHandler(svc *service.Service, wishlists store.Store[store.Wishlist], logger *logrus.Logger) *SavedHandler {
	return &SavedHandler{svc: svc, wishlists: wishlists, logger: logger}
}

// Handle processes the /saved command. Items dropped from the catalog since
// they were saved are skipped.
func (h *SavedHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	w, _ := h.wishlists.Get(chatKey(message))

	gear := make([]models.GearItem, 0, len(w.GearIDs))
	for _, id := range w.GearIDs {
		if g, err := h.svc.GetGear(id); err == nil {
			gear = append(gear, g)
		}
	}
	if len(gear) == 0 {
		return reply(bot, message, "Nothing saved yet. Use `/save <id>`.")
	}
	return reply(bot, message, gearList("💾 *Saved items*", gear))
}
