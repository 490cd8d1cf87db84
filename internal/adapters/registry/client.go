// Package registry implements ports.VersionResolver against the remote package registry.
package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.VersionResolver = (*Client)(nil)

// versionEntry is one element of the version listing of a package.
type versionEntry struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// Client queries the registry HTTP API:
//
//	GET {base}/{id}           -> [{"id": ..., "version": ...}, ...] newest first
//	GET {base}/{id}/{version} -> SharedPackageConfig
//
// Version listings are memoized for the lifetime of the client and concurrent
// requests for the same id share one round trip.
type Client struct {
	baseURL    string
	httpClient *http.Client

	requestGroup singleflight.Group
	mu           sync.RWMutex
	versions     map[string][]*semver.Version
}

// NewClient creates a Client for the registry at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return newClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func newClientWithHTTP(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		versions:   make(map[string][]*semver.Version),
	}
}

// Versions returns the published versions of id in registry order.
func (c *Client) Versions(ctx context.Context, id string) ([]*semver.Version, error) {
	key := strings.ToLower(id)

	c.mu.RLock()
	cached, ok := c.versions[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := c.requestGroup.Do(key, func() (any, error) {
		var entries []versionEntry
		if err := c.get(ctx, c.endpoint(id), &entries); err != nil {
			return nil, zerr.With(err, "id", id)
		}

		versions := make([]*semver.Version, 0, len(entries))
		for _, e := range entries {
			v, err := semver.NewVersion(e.Version)
			if err != nil {
				parseErr := zerr.Wrap(domain.ErrRegistryParseFailed, err.Error())
				parseErr = zerr.With(parseErr, "id", id)
				return nil, zerr.With(parseErr, "version", e.Version)
			}
			versions = append(versions, v)
		}

		c.mu.Lock()
		c.versions[key] = versions
		c.mu.Unlock()
		return versions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*semver.Version), nil
}

// SharedPackage returns the package config published for id at version.
func (c *Client) SharedPackage(ctx context.Context, id string, version *semver.Version) (*domain.SharedPackageConfig, error) {
	var shared domain.SharedPackageConfig
	if err := c.get(ctx, c.endpoint(id, version.String()), &shared); err != nil {
		return nil, zerr.With(zerr.With(err, "id", id), "version", version.String())
	}
	return &shared, nil
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, c.baseURL)
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return strings.Join(escaped, "/")
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRegistryRequestFailed, err.Error()), "url", u)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRegistryRequestFailed, err.Error()), "url", u)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "registry has no such package"), "url", u)
	case resp.StatusCode != http.StatusOK:
		apiErr := zerr.Wrap(domain.ErrRegistryRequestFailed, resp.Status)
		apiErr = zerr.With(apiErr, "status_code", resp.StatusCode)
		return zerr.With(apiErr, "url", u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRegistryRequestFailed, err.Error()), "url", u)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRegistryParseFailed, err.Error()), "url", u)
	}
	return nil
}
