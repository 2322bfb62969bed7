package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const renderTimeout = 30 * time.Second

// Renderer fetches a page by driving a headless browser. It is the last
// fetch tier: a real browser session survives login walls that block both
// the direct fetch and the worker proxy. A browser is launched per call;
// this tier is rare enough that keeping one warm isn't worth the memory.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a headless-browser renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render navigates a headless browser to rawURL and returns the page HTML
// after the load event fires.
func (r *Renderer) Render(ctx context.Context, rawURL string) (string, error) {
	start := time.Now()

	l := launcher.New().
		Headless(true).
		Set("no-sandbox")

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("failed to launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(renderTimeout)

	if err := page.Navigate(rawURL); err != nil {
		return "", fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("failed to wait for load: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}

	r.logger.Info("Rendered page in headless browser",
		"url", rawURL,
		"duration", time.Since(start),
		"bytes", len(html),
	)

	return html, nil
}
