package promoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	content "github.com/JasirTK/shopifysmartpromo/components/content"
)

// Config configures the Smart Promo API client.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// Client talks to a Smart Promo backend over its REST surface. It is what
// CLI tools and external integrations use instead of hand-rolled requests.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New builds a client. The base URL is normalized: a trailing slash is
// trimmed and /api is appended when absent, so "http://host", "http://host/"
// and "http://host/api" all work.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("promoapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: normalizeBaseURL(cfg.BaseURL),
		token:   cfg.Token,
		client:  httpClient,
	}, nil
}

func normalizeBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	return base
}

// ChatReply is the assistant's answer payload.
type ChatReply struct {
	Response string `json:"response"`
	HTML     string `json:"html,omitempty"`
	Topic    string `json:"topic,omitempty"`
}

// GetAllContent fetches every section. Failures degrade to an empty list so
// public pages can render their static fallbacks instead of erroring.
func (c *Client) GetAllContent(ctx context.Context) []content.ContentSection {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var sections []content.ContentSection
	if err := c.do(ctx, http.MethodGet, "/public/all-content", nil, &sections); err != nil {
		return []content.ContentSection{}
	}
	return sections
}

// GetContent fetches one section by key.
func (c *Client) GetContent(ctx context.Context, key string) (content.ContentSection, error) {
	var section content.ContentSection
	if err := c.do(ctx, http.MethodGet, "/public/content/"+url.PathEscape(key), nil, &section); err != nil {
		return content.ContentSection{}, err
	}
	return section, nil
}

// UpdateContent upserts a section. Requires a token.
func (c *Client) UpdateContent(ctx context.Context, key string, value content.Value) (content.ContentSection, error) {
	payload := map[string]content.Value{"content": value}
	var section content.ContentSection
	if err := c.do(ctx, http.MethodPut, "/admin/content/"+url.PathEscape(key), payload, &section); err != nil {
		return content.ContentSection{}, err
	}
	return section, nil
}

// SendChatMessage asks the assistant a question.
func (c *Client) SendChatMessage(ctx context.Context, sessionID, message string) (ChatReply, error) {
	payload := map[string]string{"session_id": sessionID, "message": message}
	var reply ChatReply
	if err := c.do(ctx, http.MethodPost, "/chat/message", payload, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// Login exchanges credentials for an access token and stores it on the
// client for subsequent admin calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("promoapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("promoapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", remoteError(resp)
	}
	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("promoapi: decode response: %w", err)
	}
	c.token = payload.AccessToken
	return payload.AccessToken, nil
}

// UploadImage posts a file to the upload endpoint and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("promoapi: build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("promoapi: write form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("promoapi: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/", &body)
	if err != nil {
		return "", fmt.Errorf("promoapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("promoapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", remoteError(resp)
	}
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("promoapi: decode response: %w", err)
	}
	return payload.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("promoapi: encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("promoapi: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("promoapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return remoteError(resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("promoapi: decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func remoteError(resp *http.Response) error {
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return fmt.Errorf("promoapi: remote error %d: %s", resp.StatusCode, strings.TrimSpace(buf.String()))
}
