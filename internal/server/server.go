// Package server connects the desktop shell to an opencode server.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
)

const healthPath = "/global/health"

var (
	ErrEmptyURL   = errors.New("please enter a URL")
	ErrInvalidURL = errors.New("invalid URL format")
	ErrUnhealthy  = errors.New("could not connect to server")
)

// NormalizeURL returns the canonical form of a server URL entered by a user.
// URLs without scheme default to http.
func NormalizeURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyURL
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%s: %w", s, ErrInvalidURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", fmt.Errorf("%s: %w", s, ErrInvalidURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// Health is the health status reported by a server.
type Health struct {
	Healthy bool   `json:"healthy"`
	Version string `json:"version"`
}

// Client checks servers for their health.
type Client struct {
	httpClient *retryablehttp.Client
}

// NewClient returns a new client which uses httpClient for requests.
func NewClient(httpClient *retryablehttp.Client) *Client {
	return &Client{httpClient: httpClient}
}

// CheckHealth fetches the health status of the server at baseURL.
// A server which responds with an error status is reported as not healthy.
func (c *Client) CheckHealth(ctx context.Context, baseURL string) (Health, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, baseURL+healthPath, nil)
	if err != nil {
		return Health{}, err
	}
	r, err := c.httpClient.Do(req)
	if err != nil {
		return Health{}, err
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return Health{}, err
	}
	if r.StatusCode != http.StatusOK {
		return Health{}, nil
	}
	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return Health{}, fmt.Errorf("health response from %s: %w", baseURL, err)
	}
	return h, nil
}

// Connect validates the server URL entered by a user and checks that the server is healthy.
// It returns the normalized URL.
func (c *Client) Connect(ctx context.Context, input string) (string, error) {
	u, err := NormalizeURL(input)
	if err != nil {
		return "", err
	}
	h, err := c.CheckHealth(ctx, u)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", u, ErrUnhealthy, err)
	}
	if !h.Healthy {
		return "", fmt.Errorf("%s: %w", u, ErrUnhealthy)
	}
	return u, nil
}
