// Package telegram содержит минимальный клиент Telegram Bot API для
// отправки текстовых уведомлений.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured возвращается, если не задан токен бота или чат.
var ErrNotConfigured = errors.New("telegram is not configured")

// Client отправляет сообщения в один чат.
type Client struct {
	token      string
	chatID     string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент Bot API. Пустой apiURL означает api.telegram.org.
func NewClient(token, chatID, apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		token:      token,
		chatID:     chatID,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage отправляет text в настроенный чат методом sendMessage.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	const op = "telegram.SendMessage"
	if c.token == "" || c.chatID == "" {
		return fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(sendMessageRequest{ChatID: c.chatID, Text: text, ParseMode: "HTML"}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%s: unexpected status %s: %w", op, resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK || !body.OK {
		return fmt.Errorf("%s: unexpected status %s: %s", op, resp.Status, body.Description)
	}
	return nil
}
