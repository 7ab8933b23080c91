package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTelegramSendPostsForm(t *testing.T) {
	var gotPath string
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"chat_id":    r.PostFormValue("chat_id"),
			"text":       r.PostFormValue("text"),
			"parse_mode": r.PostFormValue("parse_mode"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegram("bot-token", "chat-42").WithBaseURL(srv.URL)
	if err := tg.Send(context.Background(), "<b>Order #12</b>"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotPath != "/botbot-token/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotForm["chat_id"] != "chat-42" || gotForm["text"] != "<b>Order #12</b>" || gotForm["parse_mode"] != "html" {
		t.Fatalf("unexpected form: %v", gotForm)
	}
}

func TestTelegramSendNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tg := NewTelegram("bot-token", "chat-42").WithBaseURL(srv.URL)
	if err := tg.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestTelegramSendRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tg := NewTelegram("bot-token", "chat-42").WithBaseURL(srv.URL)
	if err := tg.Send(ctx, "hello"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestEscapeHTML(t *testing.T) {
	cases := map[string]string{
		"plain":           "plain",
		"<script>":        "&lt;script>",
		"a < b < c":       "a &lt; b &lt; c",
		"<b>keep tail</b>": "&lt;b>keep tail&lt;/b>",
	}
	for in, want := range cases {
		if got := EscapeHTML(in); got != want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNopSend(t *testing.T) {
	if err := (Nop{}).Send(context.Background(), "anything"); err != nil {
		t.Fatalf("nop must never fail: %v", err)
	}
}
