// Package menuapi is a client for the remote menu API that owns
// authentication, persistence and catalog sync.
package menuapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"menulink/internal/models"
)

const DefaultBaseURL = "https://app-menudigital.onrender.com"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("menu api: status %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the remote API.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type errorBody struct {
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseError turns an error body into bullet lines: every errors[].msg,
// else error, else message.
func parseError(status int, body []byte) *APIError {
	var eb errorBody
	msg := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case len(eb.Errors) > 0:
			lines := make([]string, 0, len(eb.Errors))
			for _, e := range eb.Errors {
				lines = append(lines, "• "+e.Msg)
			}
			msg = strings.Join(lines, "\n")
		case eb.Error != "":
			msg = "• " + eb.Error
		case eb.Message != "":
			msg = "• " + eb.Message
		}
	}
	if msg == "" {
		msg = "• Error desconocido"
	}
	return &APIError{Status: status, Message: msg}
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Auth

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (c *Client) Register(ctx context.Context, reg models.Registration) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, errors.New("menu api: login response has no access token")
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context, token string) (*models.MerchantEnvelope, error) {
	var out models.MerchantEnvelope
	if err := c.do(ctx, http.MethodGet, "/usuarios/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Merchant menu

func (c *Client) GetMenu(ctx context.Context, token string) (*models.Menu, error) {
	var out models.Menu
	if err := c.do(ctx, http.MethodGet, "/menu/", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMenu forwards the merchant's menu settings as-is.
func (c *Client) UpdateMenu(ctx context.Context, token string, payload map[string]interface{}) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.do(ctx, http.MethodPost, "/menu/update", token, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type categoriesEnvelope struct {
	Data []models.MenuCategory `json:"data"`
}

func (c *Client) ListCategories(ctx context.Context, token string) ([]models.MenuCategory, error) {
	var out categoriesEnvelope
	if err := c.do(ctx, http.MethodGet, "/categories", token, nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return []models.MenuCategory{}, nil
	}
	return out.Data, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, in models.CategoryInput) error {
	return c.do(ctx, http.MethodPost, "/categories", token, in, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, token, id string, in models.CategoryInput) error {
	return c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), token, in, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) CreateProduct(ctx context.Context, token string, in models.ProductInput) error {
	return c.do(ctx, http.MethodPost, "/products", token, in, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, in models.ProductInput) error {
	return c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), token, in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), token, nil, nil)
}

// Public

// PublicMenu reads a merchant's menu by slug without authentication.
func (c *Client) PublicMenu(ctx context.Context, slug string) (*models.Menu, error) {
	var out models.Menu
	if err := c.do(ctx, http.MethodGet, "/menu/public/"+url.PathEscape(slug), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackEvent posts an analytics event; payload keys are flattened next to
// "type".
func (c *Client) TrackEvent(ctx context.Context, token, eventType string, payload map[string]interface{}) error {
	body := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["type"] = eventType
	return c.do(ctx, http.MethodPost, "/analytics/event", token, body, nil)
}
