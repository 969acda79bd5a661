// Package github provides access to releases on GitHub.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/hashicorp/go-version"
)

var ErrHttpError = errors.New("HTTP error")

// VersionInfo compares the local version of an app with the latest release.
type VersionInfo struct {
	Local         string
	Remote        string
	Latest        string
	IsRemoteNewer bool
}

// Client fetches release information from GitHub.
type Client struct {
	httpClient *retryablehttp.Client
}

func NewClient(httpClient *retryablehttp.Client) *Client {
	return &Client{httpClient: httpClient}
}

// AvailableUpdate reports whether a newer release than the local version exists.
func (c *Client) AvailableUpdate(ctx context.Context, owner, repo, local string) (VersionInfo, error) {
	return availableUpdate(local, func() (string, error) {
		return c.fetchLatest(ctx, owner, repo)
	})
}

func availableUpdate(local string, fetchLatest func() (string, error)) (VersionInfo, error) {
	localVersion, err := version.NewVersion(local)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("local version %q: %w", local, err)
	}
	x, err := fetchLatest()
	if err != nil {
		return VersionInfo{}, err
	}
	remoteVersion, err := version.NewVersion(x)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("remote version %q: %w", x, err)
	}
	v := VersionInfo{
		Local:  localVersion.String(),
		Remote: remoteVersion.String(),
	}
	if localVersion.LessThan(remoteVersion) {
		v.Latest = v.Remote
		v.IsRemoteNewer = true
	} else {
		v.Latest = v.Local
	}
	return v, nil
}

func (c *Client) fetchLatest(ctx context.Context, owner, repo string) (string, error) {
	u := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", owner, repo)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	r, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	if r.StatusCode >= 400 {
		return "", fmt.Errorf("%s: %s: %w", u, r.Status, ErrHttpError)
	}
	var info struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", err
	}
	return info.TagName, nil
}
