package extractor

import (
	"context"
	"errors"
	"log/slog"

	"facebookfix/internal/domain"
)

// Source is one fetched origin page, shared read-only by every extraction
// pass of a single request.
type Source struct {
	// URL is the canonical origin post URL.
	URL string
	// Body is the raw page text.
	Body string
}

// Result is the tagged outcome of an extraction pass: a metadata record, a
// redirect to an origin path, or neither (try the next tier).
type Result struct {
	Record   *domain.Metadata
	Redirect string
}

// Empty reports whether the pass produced nothing usable.
func (r Result) Empty() bool {
	return r.Record == nil && r.Redirect == ""
}

// TypeExtractor is a type-specific extraction pass keyed to a URL shape.
type TypeExtractor func(src *Source) (*domain.Metadata, error)

// Fetcher retrieves a page body; the chain needs it for the embed-view tier.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Chain runs extraction passes in order of preference and stops at the
// first usable result: the given type-specific extractors, then the generic
// meta-tag tier, then the embed-view tier. An empty final result means the
// caller should redirect to the origin URL.
type Chain struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewChain creates an extraction chain.
func NewChain(fetcher Fetcher, logger *slog.Logger) *Chain {
	return &Chain{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Run executes the chain against one fetched page.
func (c *Chain) Run(ctx context.Context, src *Source, extractors ...TypeExtractor) Result {
	// The fallback tiers behave differently depending on whether a
	// type-specific pass already failed: a failure means the page's JSON
	// cannot be trusted, so meta-tag player data is used directly instead
	// of being treated as a redirect hint.
	extractionFailed := false

	for _, extract := range extractors {
		record, err := extract(src)
		if err != nil {
			c.logger.Debug("Type-specific extraction failed",
				"url", src.URL,
				"error", err,
			)
			extractionFailed = true
			continue
		}
		if record.Valid() {
			return Result{Record: record}
		}
		extractionFailed = true
	}

	result, err := ExtractMeta(src, extractionFailed)
	if err == nil && !result.Empty() {
		return result
	}
	if err != nil && !errors.Is(err, domain.ErrNoData) {
		c.logger.Debug("Generic meta extraction failed", "url", src.URL, "error", err)
	}

	result, err = c.extractEmbedView(ctx, src, extractionFailed)
	if err == nil && !result.Empty() {
		return result
	}
	if err != nil && !errors.Is(err, domain.ErrNoData) {
		c.logger.Debug("Embed view extraction failed", "url", src.URL, "error", err)
	}

	return Result{}
}
