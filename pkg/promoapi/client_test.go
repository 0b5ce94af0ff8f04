package promoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	content "github.com/JasirTK/shopifysmartpromo/components/content"
)

func TestNormalizeBaseURL(t *testing.T) {
	cases := map[string]string{
		"http://localhost:8000":      "http://localhost:8000/api",
		"http://localhost:8000/":     "http://localhost:8000/api",
		"http://localhost:8000/api":  "http://localhost:8000/api",
		"http://localhost:8000/api/": "http://localhost:8000/api",
	}
	for in, want := range cases {
		if got := normalizeBaseURL(in); got != want {
			t.Errorf("normalizeBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetAllContentFallsBackToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	sections := client.GetAllContent(context.Background())
	if sections == nil || len(sections) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", sections)
	}
}

func TestGetAllContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public/all-content" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"key": "hero", "content": map[string]any{"slides": []any{}}},
		})
	}))
	defer server.Close()

	client, _ := New(Config{BaseURL: server.URL})
	sections := client.GetAllContent(context.Background())
	if len(sections) != 1 || sections[0].Key != "hero" {
		t.Fatalf("unexpected sections: %+v", sections)
	}
}

func TestUpdateContentSendsBearer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodPut || r.URL.Path != "/api/admin/content/seo" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload struct {
			Content json.RawMessage `json:"content"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"key":"seo","content":` + string(payload.Content) + `}`))
	}))
	defer server.Close()

	client, _ := New(Config{BaseURL: server.URL, Token: "tkn"})
	section, err := client.UpdateContent(context.Background(), "seo",
		content.MustParseValue(`{"title":"New"}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotAuth != "Bearer tkn" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if section.Key != "seo" {
		t.Fatalf("unexpected section: %+v", section)
	}
}

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "admin123" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "issued", "token_type": "bearer"})
	}))
	defer server.Close()

	client, _ := New(Config{BaseURL: server.URL})
	token, err := client.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "issued" || client.token != "issued" {
		t.Fatalf("expected stored token, got %q", token)
	}
}

func TestSendChatMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["message"] == "" {
			t.Errorf("expected message in payload")
		}
		json.NewEncoder(w).Encode(ChatReply{Response: "answer", Topic: "pricing"})
	}))
	defer server.Close()

	client, _ := New(Config{BaseURL: server.URL})
	reply, err := client.SendChatMessage(context.Background(), "s1", "price?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply.Topic != "pricing" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}
