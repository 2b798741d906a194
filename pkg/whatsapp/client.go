package whatsapp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client pushes messages through a go-whatsapp-web-multidevice style
// gateway. It is optional: the deep link works without it.
type Client struct {
	BaseURL    string
	Username   string
	Password   string
	Path       string
	HTTPClient *http.Client
}

type SendMessageRequest struct {
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	IsForwarded bool   `json:"is_forwarded"`
	Duration    int    `json:"duration"`
}

type SendMessageResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Results struct {
		MessageID string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"results"`
}

func NewClient(baseURL, username, password, path string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		Path:     path,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// JID converts a phone in any format to <digits>@s.whatsapp.net.
func JID(phone string) string {
	return digitsOnly(phone) + "@s.whatsapp.net"
}

// SendMessage sends a text message and returns the gateway's reply.
func (c *Client) SendMessage(ctx context.Context, phone, message string) (*SendMessageResponse, error) {
	jsonData, err := json.Marshal(SendMessageRequest{
		Phone:   JID(phone),
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := c.BaseURL + "/send/message"
	if c.Path != "" {
		url = fmt.Sprintf("%s/%s/send/message", c.BaseURL, c.Path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Username != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
		req.Header.Set("Authorization", "Basic "+auth)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var response SendMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &response, nil
}
