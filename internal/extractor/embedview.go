package extractor

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"facebookfix/internal/domain"
	"facebookfix/internal/pkg/textutil"
)

// embedViewEndpoint serves an embeddable iframe rendering of a post. It has
// no standard meta tags, so this tier leans on site-specific selectors that
// are expected to need hand maintenance as the origin's markup drifts.
const embedViewEndpoint = "https://www.facebook.com/plugins/post.php?href="

const photoPermalinkPrefix = "https://www.facebook.com/photo.php"

// extractEmbedView is the last-resort tier: fetch the embeddable view of
// the post and scrape its markup. When the view links straight to a photo
// permalink and no type-specific pass failed, redirecting there is
// best-effort preferred over scraping.
func (c *Chain) extractEmbedView(ctx context.Context, src *Source, extractionFailed bool) (Result, error) {
	body, err := c.fetcher.Fetch(ctx, embedViewEndpoint+url.QueryEscape(src.URL))
	if err != nil {
		return Result{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Result{}, domain.ErrNoData
	}

	if !extractionFailed {
		if href, ok := doc.Find(`a[href^="` + photoPermalinkPrefix + `"]`).First().Attr("href"); ok {
			if permalink, err := url.Parse(href); err == nil {
				// The fbid query parameter is the permalink; keep it.
				return Result{Redirect: permalink.RequestURI()}, nil
			}
		}
	}

	record := domain.Metadata{
		Type: domain.TypeLink,
		URL:  src.URL,
	}

	if message := doc.Find(`div[data-testid="post_message"]`).First(); message.Length() > 0 {
		record.Description = textutil.Shorten(strings.TrimSpace(message.Text()), textutil.MetaLimit)
	}
	if owner := doc.Find("span._2_79._50f7").First(); owner.Length() > 0 {
		record.Title = strings.TrimSpace(owner.Text())
	}
	if imageSrc, ok := doc.Find("img._1p6f._1p6g").First().Attr("src"); ok && imageSrc != "" {
		record.Image = imageSrc
		record.Card = domain.CardSummaryLargeImage
		record.Type = domain.TypePhoto
	}

	if !record.Valid() {
		return Result{}, domain.ErrNoData
	}
	return Result{Record: &record}, nil
}
