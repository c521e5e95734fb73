package imagehost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client uploads images to a third-party host and hands back the public
// URL. When upload fails the caller keeps the inline-encoded data as a
// local fallback instead.
type Client struct {
	uploadURL string
	apiKey    string
	http      *http.Client
}

func New(uploadURL, apiKey string) *Client {
	return &Client{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an upload endpoint is set. Without one, image
// blocks stay on their inline data.
func (c *Client) Configured() bool {
	return c.uploadURL != ""
}

// Upload posts a base64 data URL and returns the hosted image URL.
func (c *Client) Upload(ctx context.Context, dataURL string) (string, error) {
	// Strip the "data:image/png;base64," prefix; the host wants bare base64.
	encoded := dataURL
	if i := strings.Index(dataURL, ","); i >= 0 {
		encoded = dataURL[i+1:]
	}

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("image", encoded)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("image host http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.Data.URL == "" {
		return "", fmt.Errorf("image host returned no url")
	}
	return out.Data.URL, nil
}
