// Package client is an HTTP client for the menuboard admin API. It backs the
// editor package when the dashboard runs outside the browser.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"menuboard/internal/editor"
	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 10 * time.Second

// Client calls the admin API with a session token.
type Client struct {
	baseURL string
	timeout time.Duration

	mu    sync.RWMutex
	token string
}

var _ editor.API = (*Client)(nil)

// New returns a client for the API rooted at baseURL (for example
// http://localhost:8375).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		timeout: defaultTimeout,
	}
}

// WithTimeout sets the per-request timeout used when ctx has no deadline.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the session token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login authenticates by username or email and keeps the token.
func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (*models.Account, error) {
	body := map[string]string{"password": password}
	if strings.Contains(usernameOrEmail, "@") {
		body["email"] = usernameOrEmail
	} else {
		body["username"] = usernameOrEmail
	}

	var out struct {
		Token   string          `json:"token"`
		Account *models.Account `json:"account"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return out.Account, nil
}

// Logout revokes the session token and forgets it.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, fiber.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// Dashboard is the admin landing payload.
type Dashboard struct {
	Profile *models.Profile   `json:"profile"`
	Menus   []models.MenuItem `json:"menus"`
}

// Dashboard fetches the profile and every menu item.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := c.do(ctx, fiber.MethodGet, "/admin/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMenuItem implements editor.API.
func (c *Client) CreateMenuItem(ctx context.Context, in editor.MenuItemInput) (*models.MenuItem, error) {
	in.ID = ""
	return c.writeItem(ctx, fiber.MethodPost, "/admin/menu", in)
}

// UpdateMenuItem implements editor.API.
func (c *Client) UpdateMenuItem(ctx context.Context, in editor.MenuItemInput) (*models.MenuItem, error) {
	if in.ID == "" {
		return nil, models.NewValidationError("Menu Item ID is required")
	}
	return c.writeItem(ctx, fiber.MethodPut, "/admin/menu", in)
}

// DeleteMenuItem implements editor.API.
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, fiber.MethodDelete, "/admin/menu", map[string]string{"_id": id}, nil)
}

// SetHidden implements editor.API.
func (c *Client) SetHidden(ctx context.Context, id string, hidden bool) (*models.MenuItem, error) {
	return c.writeItem(ctx, fiber.MethodPost, "/admin/menu/hidden", map[string]any{
		"itemId": id,
		"hidden": hidden,
	})
}

// ReplaceCategories implements editor.API.
func (c *Client) ReplaceCategories(ctx context.Context, categories []string) ([]string, error) {
	if categories == nil {
		categories = []string{}
	}
	var out struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/admin/categories", map[string]any{"categories": categories}, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CreateTables recreates the tables of restaurantID. A zero count lets the
// server pick its default.
func (c *Client) CreateTables(ctx context.Context, restaurantID string, count int) ([]models.Table, error) {
	body := map[string]any{"restaurantID": restaurantID}
	if count > 0 {
		body["count"] = count
	}
	var out struct {
		Tables []models.Table `json:"tables"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/admin/tables/create", body, &out); err != nil {
		return nil, err
	}
	return out.Tables, nil
}

func (c *Client) writeItem(ctx context.Context, method, path string, body any) (*models.MenuItem, error) {
	var out struct {
		Data *models.MenuItem `json:"data"`
	}
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// do sends one request. Error envelopes come back as *models.AppError carrying
// the server's code and message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if token := c.Token(); token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		a.JSON(body)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	a.Timeout(timeout)

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("build request: %w", err)
	}

	// Bytes releases the agent.
	code, raw, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errs[0])
	}

	if code >= fiber.StatusBadRequest {
		var envelope models.ErrorResponse
		if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == "" {
			return &models.AppError{Code: models.CodeInternal, Message: fmt.Sprintf("unexpected status %d", code)}
		}
		return &models.AppError{Code: envelope.Code, Message: envelope.Message}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
