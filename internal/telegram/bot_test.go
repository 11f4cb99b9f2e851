package telegram

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/models"
	"github.com/Kerhoff/KlaGear/internal/telegram/telegramtest"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type echoHandler struct {
	got []string
	err error
}

func (h *echoHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	h.got = args
	return h.err
}

type toastHandler struct {
	payload string
}

func (h *toastHandler) HandleCallback(bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery, payload string) (string, error) {
	h.payload = payload
	return "Added " + payload, nil
}

func TestRouter_Commands(t *testing.T) {
	fake, api := telegramtest.New(t)
	r := NewRouter(quietLogger())

	ok := &echoHandler{}
	failing := &echoHandler{err: errors.New("boom")}
	r.RegisterCommand("gear", ok)
	r.RegisterCommand("quote", failing)

	r.HandleMessage(api, telegramtest.Command("/gear sony  fx6"))
	if strings.Join(ok.got, ",") != "sony,fx6" {
		t.Errorf("args = %v, want [sony fx6]", ok.got)
	}
	if n := len(fake.Messages()); n != 0 {
		t.Errorf("successful handler produced %d router messages", n)
	}

	r.HandleMessage(api, telegramtest.Command("/quote"))
	r.HandleMessage(api, telegramtest.Command("/nope"))
	r.HandleMessage(api, &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}, Text: "just chatting"})

	msgs := fake.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2: %v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0], "error occurred") {
		t.Errorf("failure reply = %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "Unknown command") {
		t.Errorf("unknown reply = %q", msgs[1])
	}
}

func TestRouter_Callbacks(t *testing.T) {
	fake, api := telegramtest.New(t)
	r := NewRouter(quietLogger())
	h := &toastHandler{}
	r.RegisterCallback("add", h)

	r.HandleCallbackQuery(api, &tgbotapi.CallbackQuery{
		ID:   "cb1",
		From: &tgbotapi.User{ID: 7},
		Data: "add:fx6",
	})
	if h.payload != "fx6" {
		t.Errorf("payload = %q, want fx6", h.payload)
	}

	r.HandleCallbackQuery(api, &tgbotapi.CallbackQuery{ID: "cb2", From: &tgbotapi.User{ID: 7}, Data: "zap:1"})

	calls := fake.Calls()
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	for _, c := range calls {
		if c.Method != "answerCallbackQuery" {
			t.Errorf("method = %s, want answerCallbackQuery", c.Method)
		}
	}
	if got := calls[0].Params.Get("text"); got != "Added fx6" {
		t.Errorf("toast = %q", got)
	}
}

func TestNotifyBooking(t *testing.T) {
	fake, api := telegramtest.New(t)
	b := newBot(api, 99, quietLogger())

	booking := &models.BookingRequest{
		Reference:     "3f2a-ref",
		CustomerName:  "Amina_N",
		CustomerPhone: "+256772123456",
		StartDate:     time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 11, 4, 0, 0, 0, 0, time.UTC),
		Days:          3,
		Channel:       models.BookingChannelWhatsApp,
		Items:         []models.BookingItem{{GearID: "fx6", GearName: "Sony FX6", Quantity: 1, PricePerDay: 350000}},
	}
	if err := b.NotifyBooking(context.Background(), booking); err != nil {
		t.Fatalf("NotifyBooking error: %v", err)
	}

	calls := fake.Calls()
	if len(calls) != 1 || calls[0].Params.Get("chat_id") != "99" {
		t.Fatalf("calls = %+v", calls)
	}
	text := calls[0].Params.Get("text")
	for _, want := range []string{"via whatsapp", "3f2a-ref", `Amina\_N`, "Sony FX6"} {
		if !strings.Contains(text, want) {
			t.Errorf("notification missing %q:\n%s", want, text)
		}
	}
}

func TestNotifyBooking_NoOperator(t *testing.T) {
	fake, api := telegramtest.New(t)
	b := newBot(api, 0, quietLogger())

	if err := b.NotifyBooking(context.Background(), &models.BookingRequest{}); err != nil {
		t.Fatalf("NotifyBooking error: %v", err)
	}
	if n := len(fake.Calls()); n != 0 {
		t.Errorf("got %d calls, want none", n)
	}
}
