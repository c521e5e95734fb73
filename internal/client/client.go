package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anuj452005/excalidraw/internal/domain"
	"github.com/anuj452005/excalidraw/internal/session"
)

// Client talks to the note service's CRUD API. It implements session.API.
// No local timeouts beyond the HTTP client's 30s default; no retries.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token used on every subsequent request.
func (c *Client) SetToken(token string) { c.token = token }

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

func (c *Client) GetPage(ctx context.Context, id string) (*domain.PageState, error) {
	var state domain.PageState
	if err := c.do(ctx, http.MethodGet, "/api/pages/"+id, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) UpdatePage(ctx context.Context, id, title string) (*domain.Page, error) {
	var page domain.Page
	err := c.do(ctx, http.MethodPut, "/api/pages/"+id, map[string]string{"title": title}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateBlock(ctx context.Context, in session.CreateBlockInput) (*domain.Block, error) {
	var block domain.Block
	if err := c.do(ctx, http.MethodPost, "/api/blocks", in, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

func (c *Client) UpdateBlock(ctx context.Context, id string, patch session.BlockPatch) (*domain.Block, error) {
	var block domain.Block
	if err := c.do(ctx, http.MethodPut, "/api/blocks/"+id, patch, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

func (c *Client) DeleteBlock(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/blocks/"+id, nil, nil)
}

// ListPages returns the caller's pages.
func (c *Client) ListPages(ctx context.Context) ([]domain.Page, error) {
	var pages []domain.Page
	if err := c.do(ctx, http.MethodGet, "/api/pages", nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// CreatePage creates an empty page and returns it.
func (c *Client) CreatePage(ctx context.Context, title, folderID string) (*domain.Page, error) {
	var page domain.Page
	err := c.do(ctx, http.MethodPost, "/api/pages",
		map[string]string{"title": title, "folderId": folderID}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// do issues one request and decodes the JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s: %w: %s", method, path, statusErr(resp.StatusCode), strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusErr maps HTTP status codes onto the domain error taxonomy so callers
// can match with errors.Is.
func statusErr(code int) error {
	switch code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusForbidden:
		return domain.ErrAccessDenied
	case http.StatusBadRequest:
		return domain.ErrValidation
	default:
		return fmt.Errorf("http %d", code)
	}
}
