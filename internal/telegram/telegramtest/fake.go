// Package telegramtest runs a fake Bot API server for handler tests.
package telegramtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Call is one Bot API request received by the fake
type Call struct {
	Method string
	Params url.Values
}

// Server records every Bot API call and answers with canned success results.
type Server struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls []Call
}

// New starts a fake Bot API and returns a client wired to it. The server is
// closed when the test ends.
func New(t *testing.T) (*Server, *tgbotapi.BotAPI) {
	t.Helper()

	s := &Server{}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)

	api, err := tgbotapi.NewBotAPIWithClient("test-token", s.srv.URL+"/bot%s/%s", s.srv.Client())
	if err != nil {
		t.Fatalf("failed to create bot API: %v", err)
	}
	return s, api
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	method := path.Base(r.URL.Path)

	s.mu.Lock()
	if method != "getMe" {
		s.calls = append(s.calls, Call{Method: method, Params: r.PostForm})
	}
	s.mu.Unlock()

	var result any
	switch method {
	case "getMe":
		result = map[string]any{"id": 1, "is_bot": true, "first_name": "KlaGear", "username": "klagear_bot"}
	case "sendMessage":
		chatID, _ := json.Number(r.PostForm.Get("chat_id")).Int64()
		result = map[string]any{"message_id": 1, "date": 0, "chat": map[string]any{"id": chatID, "type": "private"}}
	default:
		result = true
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

// Calls returns the recorded calls other than getMe
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Messages returns the text of every sendMessage call
func (s *Server) Messages() []string {
	var out []string
	for _, c := range s.Calls() {
		if c.Method == "sendMessage" {
			out = append(out, c.Params.Get("text"))
		}
	}
	return out
}

// Command builds an incoming command message from chat 42, user 7.
func Command(text string) *tgbotapi.Message {
	n := len(text)
	for i, r := range text {
		if r == ' ' {
			n = i
			break
		}
	}
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: 7, UserName: "amina"},
		Chat:      &tgbotapi.Chat{ID: 42, Type: "private"},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: n}},
	}
}
