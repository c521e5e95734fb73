package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client executes code through a Piston-compatible service. The service is
// an external collaborator; this is a thin relay that stores nothing.
type Client struct {
	baseURL string
	http    *http.Client
}

// Result is what the editor shows in a code block's output field.
type Result struct {
	Output   string `json:"output"`
	ExitCode int    `json:"exitCode"`
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Execute runs code remotely and returns combined stdout/stderr.
func (c *Client) Execute(ctx context.Context, language, code string) (*Result, error) {
	payload := map[string]any{
		"language": language,
		"version":  "*",
		"files":    []map[string]string{{"content": code}},
	}
	raw, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("runner http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Run struct {
			Output string `json:"output"`
			Code   int    `json:"code"`
		} `json:"run"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode runner response: %w", err)
	}
	return &Result{Output: out.Run.Output, ExitCode: out.Run.Code}, nil
}
