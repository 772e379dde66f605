package goPress

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrEthical07/goPress/vault"
)

func newMediaClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := defaultConfig()
	cfg.API.BaseURL = baseURL + "/api"

	client, err := New().
		WithConfig(cfg).
		WithVault(vault.NewMemory()).
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func chatTurnBody() map[string]any {
	return map[string]any{
		"chatId": "c1",
		"userMessage": map[string]any{
			"_id": "m1", "chatId": "c1", "content": "hi", "role": "user",
		},
		"assistantMessage": map[string]any{
			"_id": "m2", "chatId": "c1", "content": "hello", "role": "assistant",
			"mediaType": "image", "mediaUrl": "https://cdn.example.com/x.png",
		},
	}
}

func TestCreateChatUsesNewChatRoute(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chats/new/messages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, chatTurnBody())
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newMediaClient(t, server.URL)
	turn, err := client.CreateChat(context.Background(), "hi")
	if err != nil {
		t.Fatalf("CreateChat failed: %v", err)
	}
	if turn.ChatID != "c1" || turn.AssistantMessage.Content != "hello" {
		t.Fatalf("turn = %+v", turn)
	}
}

func TestSendImageUploadsMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chats/c1/images", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.FormValue("content"); got != "what is this chart" {
			t.Errorf("content field = %q", got)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("image part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "chart.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "png-bytes" {
			t.Errorf("image payload = %q", data)
		}
		writeJSON(w, http.StatusOK, chatTurnBody())
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newMediaClient(t, server.URL)
	turn, err := client.SendImage(context.Background(), "c1", "chart.png", strings.NewReader("png-bytes"), "what is this chart")
	if err != nil {
		t.Fatalf("SendImage failed: %v", err)
	}
	if turn.AssistantMessage.MediaURL != "https://cdn.example.com/x.png" {
		t.Fatalf("media url = %q", turn.AssistantMessage.MediaURL)
	}
}

func TestPostNewsUploadsMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("X-Request-Id"); got != "req-42" {
			t.Errorf("request id = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.FormValue("title"); got != "Markets" {
			t.Errorf("title = %q", got)
		}
		if got := r.FormValue("summary"); got != "sum" {
			t.Errorf("summary = %q", got)
		}
		if got := r.FormValue("content"); got != "body" {
			t.Errorf("content = %q", got)
		}
		if got := r.MultipartForm.Value["tags"]; len(got) != 2 || got[0] != "econ" || got[1] != "markets" {
			t.Errorf("tags = %v", got)
		}
		if got := r.FormValue("isPublished"); got != "true" {
			t.Errorf("isPublished = %q", got)
		}
		if got := r.MultipartForm.File["images"]; len(got) != 2 {
			t.Errorf("images = %d files", len(got))
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newMediaClient(t, server.URL)
	published := true
	post := NewsPost{
		Title:     "Markets",
		Summary:   "sum",
		Content:   "body",
		Tags:      []string{"econ", "markets"},
		Published: &published,
		Images: []NewsImage{
			{Filename: "a.png", Content: strings.NewReader("a")},
			{Filename: "b.png", Content: strings.NewReader("b")},
		},
	}

	ctx := WithRequestID(context.Background(), "req-42")
	if err := client.PostNews(ctx, post); err != nil {
		t.Fatalf("PostNews failed: %v", err)
	}
}

func TestPostNewsOmitsUnsetPublicationState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, ok := r.MultipartForm.Value["isPublished"]; ok {
			t.Error("nil Published must not send an isPublished field")
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newMediaClient(t, server.URL)
	post := NewsPost{Title: "Markets", Summary: "sum", Content: "body"}
	if err := client.PostNews(context.Background(), post); err != nil {
		t.Fatalf("PostNews failed: %v", err)
	}
}
