package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/compare"
	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/service"
)

// CallbackAdd prefixes inline-button data that adds an item to the quote.
const CallbackAdd = "add"

// ---------------------------------------------------------------------------
// GearHandler – /gear [query]
// ---------------------------------------------------------------------------

// GearHandler lists or searches the catalog.
type GearHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewGearHandler creates a new GearHandler.
func NewGearHandler(svc *service.Service, logger *logrus.Logger) *GearHandler {
	return &GearHandler{svc: svc, logger: logger}
}

// Handle processes the /gear command.
func (h *GearHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	query := strings.Join(args, " ")
	gear := h.svc.ListGear(service.ListQuery{Query: query})

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"query":   query,
		"results": len(gear),
	}).Info("Gear listed")

	if len(gear) == 0 {
		return reply(bot, message, fmt.Sprintf("🔍 Nothing matches *%s*. Try /categories.", escape(query)))
	}

	title := "🎥 *Catalog*"
	if query != "" {
		title = fmt.Sprintf("🔍 *Results for %s*", escape(query))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, gearList(title, gear))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb, ok := addKeyboard(gear); ok {
		msg.ReplyMarkup = kb
	}
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send gear list: %w", err)
	}
	return nil
}

// addKeyboard offers an add-to-quote button for every listed, available item.
func addKeyboard(gear []models.GearItem) (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, g := range gear {
		if i == maxListed {
			break
		}
		if !g.Available {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ "+g.Name, CallbackAdd+":"+g.ID),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}, len(rows) > 0
}

// ---------------------------------------------------------------------------
// CategoriesHandler – /categories
// ---------------------------------------------------------------------------

// CategoriesHandler lists catalog categories with item counts.
type CategoriesHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(svc *service.Service, logger *logrus.Logger) *CategoriesHandler {
	return &CategoriesHandler{svc: svc, logger: logger}
}

// Handle processes the /categories command.
func (h *CategoriesHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	counts := make(map[string]int)
	for _, g := range h.svc.ListGear(service.ListQuery{}) {
		counts[g.Category]++
	}

	var sb strings.Builder
	sb.WriteString("🗂 *Categories*\n\n")
	for _, c := range h.svc.CategoryList() {
		fmt.Fprintf(&sb, "• %s (%d)\n", escape(c.Name), counts[c.ID])
	}
	return reply(bot, message, sb.String())
}

// ---------------------------------------------------------------------------
// RecommendHandler – /recommend <id>
// ---------------------------------------------------------------------------

// RecommendHandler suggests companion gear for an item.
type RecommendHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(svc *service.Service, logger *logrus.Logger) *RecommendHandler {
	return &RecommendHandler{svc: svc, logger: logger}
}

// Handle processes the /recommend command.
func (h *RecommendHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) != 1 {
		return reply(bot, message, "❌ Usage: `/recommend <id>`")
	}

	anchor, err := h.svc.GetGear(args[0])
	if err != nil {
		return replyServiceError(bot, message, err)
	}
	gear, err := h.svc.Recommend(anchor.ID, 0)
	if err != nil {
		return replyServiceError(bot, message, err)
	}
	if len(gear) == 0 {
		return reply(bot, message, fmt.Sprintf("No suggestions for *%s* yet.", escape(anchor.Name)))
	}

	return reply(bot, message, gearList(fmt.Sprintf("🤝 *Goes well with %s*", escape(anchor.Name)), gear))
}

// ---------------------------------------------------------------------------
// CompareHandler – /compare <id> <id> [...]
// ---------------------------------------------------------------------------

// CompareHandler shows up to four items side by side.
type CompareHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewCompareHandler creates a new CompareHandler.
func NewCompareHandler(svc *service.Service, logger *logrus.Logger) *CompareHandler {
	return &CompareHandler{svc: svc, logger: logger}
}

// Handle processes the /compare command.
func (h *CompareHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) < compare.MinItems || len(args) > compare.MaxItems {
		return reply(bot, message, "❌ Usage: `/compare <id> <id> [id] [id]`")
	}

	res, err := h.svc.Compare(args)
	if err != nil {
		return replyServiceError(bot, message, err)
	}
	return reply(bot, message, formatComparison(res))
}

func formatComparison(res *compare.Result) string {
	var sb strings.Builder
	sb.WriteString("⚖️ *Comparison*\n")

	for i, g := range res.Items {
		fmt.Fprintf(&sb, "\n*%d. %s*\n", i+1, escape(g.Name))
		for _, row := range res.Prices {
			c := row.Cells[i]
			line := fmt.Sprintf("%s: %s", row.Label, formatAmount(c.Amount))
			if c.IsLowest {
				line += " ✅"
			} else if c.Delta > 0 {
				line += " (+" + formatAmount(c.Delta) + ")"
			}
			sb.WriteString(line + "\n")
		}
		if s := res.WeeklySavings[i]; s.Amount > 0 {
			fmt.Fprintf(&sb, "Weekly saving: %s (%.0f%%)\n", formatAmount(s.Amount), s.Percent)
		}

		for _, b := range res.Badges[g.ID] {
			fmt.Fprintf(&sb, "🏷 %s\n", b)
		}
	}

	if len(res.Specs) > 0 {
		sb.WriteString("\n*Specs*\n")
		for _, row := range res.Specs {
			fmt.Fprintf(&sb, "%s: %s\n", escape(row.Name), escape(strings.Join(row.Values, " | ")))
		}
	}
	return sb.String()
}
