// Package fetcher retrieves raw origin HTML for canonicalized post URLs,
// working around the origin's login-wall defenses.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"facebookfix/internal/domain"
)

const (
	fetchTimeout = 10 * time.Second
	maxBodyBytes = 5 * 1024 * 1024 // origin pages are large but bounded

	// loginWallMarker appears in the final URL path when the origin refuses
	// direct access and bounces the request to its login page.
	loginWallMarker = "/login"
)

// browserHeaders is a fixed desktop-browser profile. Without it the origin
// serves a stripped mobile/bot variant that carries none of the embedded
// JSON blocks the extractors need.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.9",
	"Accept-Language":           "en-US,en;q=0.9",
	"Cache-Control":             "max-age=0",
	"Referer":                   "https://www.facebook.com/",
	"Sec-Fetch-Mode":            "navigate",
	"Upgrade-Insecure-Requests": "1",
	"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.4896.60 Safari/537.36",
	"Viewport-Width":            "1280",
}

// Client fetches origin pages over a single pooled HTTP client. It is built
// once at startup and is safe for concurrent use; all state is read-only.
type Client struct {
	httpClient *http.Client
	proxyURL   string
	renderer   *Renderer
	logger     *slog.Logger
}

// New creates a page fetcher. proxyURL may be empty (no proxy retry) and
// renderer may be nil (no headless-browser fallback).
func New(proxyURL string, renderer *Renderer, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		proxyURL: proxyURL,
		renderer: renderer,
		logger:   logger,
	}
}

// Fetch returns the page body for rawURL. A login-walled response is retried
// through the configured worker proxy and then, as a last resort, through
// the headless-browser renderer. Any path that cannot produce a body fails
// with a *domain.FetchError so callers can redirect to the origin.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	body, finalPath, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if !strings.Contains(finalPath, loginWallMarker) {
		return body, nil
	}

	c.logger.Info("Origin served a login wall, retrying",
		"url", rawURL,
		"proxy_configured", c.proxyURL != "",
		"browser_fallback", c.renderer != nil,
	)

	if c.proxyURL != "" {
		body, err := c.fetchViaProxy(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		c.logger.Warn("Proxy retry failed", "url", rawURL, "error", err)
		if c.renderer == nil {
			return "", err
		}
	}

	if c.renderer != nil {
		body, err := c.renderer.Render(ctx, rawURL)
		if err != nil {
			return "", &domain.FetchError{URL: rawURL, Err: fmt.Errorf("browser render: %w", err)}
		}
		return body, nil
	}

	return "", &domain.FetchError{URL: rawURL, Err: fmt.Errorf("login wall and no proxy configured")}
}

// get issues a direct GET with the browser header profile and returns the
// body together with the final (post-redirect) URL path.
func (c *Client) get(ctx context.Context, rawURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", &domain.FetchError{URL: rawURL, Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", &domain.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", &domain.FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", &domain.FetchError{URL: rawURL, Err: fmt.Errorf("reading body: %w", err)}
	}

	return string(body), resp.Request.URL.Path, nil
}

// fetchViaProxy re-issues the GET through the worker proxy, which forwards
// the request from an unblocked vantage point. The proxy receives the target
// as a query parameter and its response is used verbatim.
func (c *Client) fetchViaProxy(ctx context.Context, target string) (string, error) {
	proxyURL, err := url.Parse(c.proxyURL)
	if err != nil {
		return "", &domain.FetchError{URL: target, Err: fmt.Errorf("invalid proxy URL: %w", err)}
	}
	query := proxyURL.Query()
	query.Set("url", target)
	proxyURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proxyURL.String(), nil)
	if err != nil {
		return "", &domain.FetchError{URL: target, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.FetchError{URL: target, Err: fmt.Errorf("proxy request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.FetchError{URL: target, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &domain.FetchError{URL: target, Err: fmt.Errorf("reading proxy body: %w", err)}
	}

	return string(body), nil
}
