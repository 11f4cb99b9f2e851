package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/handoff"
	"github.com/Kerhoff/KlaGear/internal/service"
	"github.com/Kerhoff/KlaGear/internal/store"
)

const (
	maxQuantity = 50
	maxDays     = 366
)

// ---------------------------------------------------------------------------
// AddHandler – /add <id> [qty]
// ---------------------------------------------------------------------------

// AddHandler puts gear into the chat's quote cart. It also serves the
// add-to-quote inline buttons.
type AddHandler struct {
	svc    *service.Service
	carts  store.Store[store.Cart]
	logger *logrus.Logger
}

// NewAddHandler creates a new AddHandler.
func NewAddHandler(svc *service.Service, carts store.Store[store.Cart], logger *logrus.Logger) *AddHandler {
	return &AddHandler{svc: svc, carts: carts, logger: logger}
}

// Handle processes the /add command.
func (h *AddHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return reply(bot, message, "❌ Usage: `/add <id> [qty]`")
	}

	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > maxQuantity {
			return reply(bot, message, fmt.Sprintf("❌ Quantity must be a number from 1 to %d.", maxQuantity))
		}
		qty = n
	}

	name, err := h.add(chatKey(message), args[0], qty)
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":  message.Chat.ID,
		"gear_id":  args[0],
		"quantity": qty,
	}).Info("Added to quote")

	return reply(bot, message, fmt.Sprintf("🛒 Added %d × *%s*. See your quote with /quote.", qty, escape(name)))
}

// HandleCallback adds one of the item named in payload.
func (h *AddHandler) HandleCallback(bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery, payload string) (string, error) {
	if query.Message == nil {
		return "", fmt.Errorf("callback %s has no message", query.ID)
	}

	name, err := h.add(strconv.FormatInt(query.Message.Chat.ID, 10), payload, 1)
	if err != nil {
		if service.Code(err) != "" {
			return err.Error(), nil
		}
		return "", err
	}
	return "Added " + name, nil
}

func (h *AddHandler) add(key, gearID string, qty int) (string, error) {
	g, err := h.svc.GetGear(gearID)
	if err != nil {
		return "", err
	}
	if !g.Available {
		return "", &service.Error{Code: service.ErrUnavailable, Message: g.Name + " is not available for hire"}
	}

	h.carts.Update(key, func(cart store.Cart, _ bool) (store.Cart, bool) {
		return cart.Add(g.ID, qty), true
	})
	return g.Name, nil
}

// ---------------------------------------------------------------------------
// RemoveHandler – /remove <id>
// ---------------------------------------------------------------------------

// RemoveHandler drops an item from the chat's quote cart.
type RemoveHandler struct {
	carts  store.Store[store.Cart]
	logger *logrus.Logger
}

// NewRemoveHandler creates a new RemoveHandler.
func NewRemoveHandler(carts store.Store[store.Cart], logger *logrus.Logger) *RemoveHandler {
	return &RemoveHandler{carts: carts, logger: logger}
}

// Handle processes the /remove command.
func (h *RemoveHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) != 1 {
		return reply(bot, message, "❌ Usage: `/remove <id>`")
	}

	removed := false
	h.carts.Update(chatKey(message), func(cart store.Cart, ok bool) (store.Cart, bool) {
		next := cart.Remove(args[0])
		removed = len(next.Lines) != len(cart.Lines)
		if !removed {
			return cart, ok
		}
		return next, !next.IsEmpty()
	})
	if !removed {
		return reply(bot, message, fmt.Sprintf("`%s` is not in your quote.", escape(args[0])))
	}
	return reply(bot, message, "🗑 Removed.")
}

// ---------------------------------------------------------------------------
// QuoteHandler – /quote [days]
// ---------------------------------------------------------------------------

// QuoteHandler prices the chat's cart.
type QuoteHandler struct {
	svc    *service.Service
	carts  store.Store[store.Cart]
	logger *logrus.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(svc *service.Service, carts store.Store[store.Cart], logger *logrus.Logger) *QuoteHandler {
	return &QuoteHandler{svc: svc, carts: carts, logger: logger}
}

// Handle processes the /quote command. The day count is remembered for the
// next /quote without one.
func (h *QuoteHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	key := chatKey(message)
	cart, _ := h.carts.Get(key)
	if cart.IsEmpty() {
		return reply(bot, message, "🛒 Your quote is empty. Add gear with `/add <id>`.")
	}

	if len(args) > 0 {
		days, err := strconv.Atoi(args[0])
		if err != nil || days < 1 || days > maxDays {
			return reply(bot, message, fmt.Sprintf("❌ Days must be a number from 1 to %d.", maxDays))
		}
		cart = h.carts.Update(key, func(c store.Cart, ok bool) (store.Cart, bool) {
			c.Days = days
			return c, ok
		})
		if cart.IsEmpty() {
			return reply(bot, message, "🛒 Your quote is empty. Add gear with `/add <id>`.")
		}
	}
	if cart.Days == 0 {
		cart.Days = 1
	}

	req := service.QuoteRequest{Days: cart.Days}
	for _, l := range cart.Lines {
		req.Items = append(req.Items, service.QuoteLine{GearID: l.GearID, Quantity: l.Quantity})
	}

	res, err := h.svc.Quote(req)
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	text := formatQuote(res)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if wa := h.svc.Contact().WhatsApp; wa != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💬 Book on WhatsApp", handoff.WhatsAppURL(wa, plainQuote(res))),
		))
	}
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send quote: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"days":    cart.Days,
		"total":   res.Rounded.Total,
	}).Info("Quote sent")
	return nil
}

func formatQuote(res *service.QuoteResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧾 *Quote for %d day(s)*\n\n", res.Breakdown.Days)
	for _, it := range res.Items {
		fmt.Fprintf(&sb, "• %d × %s @ %s/day\n", it.Quantity, escape(it.Gear.Name), formatAmount(it.Gear.PricePerDay))
	}

	f := res.Formatted
	fmt.Fprintf(&sb, "\nSubtotal: %s\n", f.Subtotal)
	if res.Rounded.WeeklyDiscount > 0 {
		fmt.Fprintf(&sb, "Weekly discount: −%s\n", f.WeeklyDiscount)
	}
	if res.Rounded.BundleDiscount > 0 {
		fmt.Fprintf(&sb, "Bundle discount: −%s\n", f.BundleDiscount)
	}
	fmt.Fprintf(&sb, "Insurance: %s\n", f.Insurance)
	fmt.Fprintf(&sb, "VAT: %s\n", f.Tax)
	fmt.Fprintf(&sb, "*Total: %s*\n", f.Total)
	fmt.Fprintf(&sb, "Deposit: %s, balance %s", f.Deposit, f.Balance)
	return sb.String()
}

// plainQuote is the WhatsApp prefill for a quote.
func plainQuote(res *service.QuoteResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi, I'd like to hire for %d day(s):\n", res.Breakdown.Days)
	for _, it := range res.Items {
		fmt.Fprintf(&sb, "- %d x %s\n", it.Quantity, it.Gear.Name)
	}
	fmt.Fprintf(&sb, "Quoted total: %s", res.Formatted.Total)
	return sb.String()
}

// ---------------------------------------------------------------------------
// ClearHandler – /clear
// ---------------------------------------------------------------------------

// ClearHandler empties the chat's quote cart.
type ClearHandler struct {
	carts  store.Store[store.Cart]
	logger *logrus.Logger
}

// NewClearHandler creates a new ClearHandler.
func NewClearHandler(carts store.Store[store.Cart], logger *logrus.Logger) *ClearHandler {
	return &ClearHandler{carts: carts, logger: logger}
}

// Handle processes the /clear command.
func (h *ClearHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	h.carts.Delete(chatKey(message))
	return reply(bot, message, "🧹 Quote cleared.")
}
