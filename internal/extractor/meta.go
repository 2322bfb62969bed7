package extractor

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"facebookfix/internal/domain"
	"facebookfix/internal/pkg/textutil"
)

// stillImageExtensions are the suffixes accepted for display images. The
// origin also serves video posters and tracking pixels through og:image;
// anything without a still-image extension is rejected.
var stillImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// pageMeta is what the generic tier reads out of the document head.
type pageMeta struct {
	tags   map[string]string // "property:og:title" / "name:twitter:player" -> content
	ldJSON string            // first application/ld+json script body
}

// ExtractMeta is the generic fallback tier: standard meta tags plus the
// structured-data script, read from the already-fetched page. When the
// origin's own twitter:player tag names an embeddable target and no
// type-specific pass failed, that target is a better answer than anything
// we could synthesize, so a redirect to it is returned instead of a record.
func ExtractMeta(src *Source, extractionFailed bool) (Result, error) {
	doc, err := html.Parse(strings.NewReader(src.Body))
	if err != nil {
		return Result{}, domain.ErrNoData
	}
	meta := collectPageMeta(doc)

	record := domain.Metadata{
		Type: domain.TypeLink,
		URL:  src.URL,
	}

	if player := meta.tags["name:twitter:player"]; player != "" {
		playerURL, err := url.Parse(player)
		if err == nil {
			if href := playerURL.Query().Get("href"); href != "" && !extractionFailed {
				if inner, err := url.Parse(href); err == nil {
					return Result{Redirect: inner.Path}, nil
				}
			}
			record.Card = domain.CardPlayer
			record.Type = domain.TypeVideo
			record.Video = player
			record.Width, _ = strconv.Atoi(playerURL.Query().Get("width"))
			record.Height, _ = strconv.Atoi(playerURL.Query().Get("height"))
		}
	}

	if title := meta.tags["property:og:title"]; title != "" {
		record.Title = title
	}
	if description := meta.tags["property:og:description"]; description != "" {
		record.Description = description
	}
	if image := meta.tags["property:og:image"]; image != "" && isStillImage(image) {
		record.Image = image
		if record.Video == "" {
			record.Card = domain.CardSummaryLargeImage
			record.Type = domain.TypePhoto
		}
	}

	// When an image was found, the structured-data script often carries a
	// richer caption and the author's name; prefer those when present. A
	// malformed script is ignored, this tier stays best-effort.
	if record.Image != "" && meta.ldJSON != "" {
		var structured map[string]any
		if err := json.Unmarshal([]byte(meta.ldJSON), &structured); err == nil {
			if body, ok := digString(structured, "articleBody"); ok && body != "" {
				record.Description = body
			}
			if author, ok := digString(structured, "author", "name"); ok && author != "" {
				record.Title = author
			}
			if image, ok := digString(structured, "image", "contentUrl"); ok && isStillImage(image) {
				record.Image = image
			}
		}
	}

	if record.Description != "" {
		record.Description = textutil.Shorten(record.Description, textutil.MetaLimit)
	}

	if !record.Valid() {
		return Result{}, domain.ErrNoData
	}
	return Result{Record: &record}, nil
}

// collectPageMeta walks the parsed tree once, gathering meta tag contents
// and the first structured-data script.
func collectPageMeta(doc *html.Node) pageMeta {
	meta := pageMeta{tags: make(map[string]string)}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				property := attrValue(n, "property")
				name := attrValue(n, "name")
				content := attrValue(n, "content")
				if content != "" {
					if property != "" {
						if _, seen := meta.tags["property:"+property]; !seen {
							meta.tags["property:"+property] = content
						}
					}
					if name != "" {
						if _, seen := meta.tags["name:"+name]; !seen {
							meta.tags["name:"+name] = content
						}
					}
				}
			case "script":
				if attrValue(n, "type") == "application/ld+json" && meta.ldJSON == "" && n.FirstChild != nil {
					meta.ldJSON = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return meta
}

// attrValue gets an attribute value from an HTML node.
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// isStillImage reports whether the URL's path ends in a recognized
// still-image extension.
func isStillImage(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return stillImageExtensions[strings.ToLower(path.Ext(parsed.Path))]
}
