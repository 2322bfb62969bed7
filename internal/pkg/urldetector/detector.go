// Package urldetector finds facebook post links in free chat text and
// rewrites them onto the fixer host.
package urldetector

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind is the post shape a detected URL points at.
type Kind string

const (
	KindReel  Kind = "reel"
	KindVideo Kind = "video"
	KindWatch Kind = "watch"
	KindPhoto Kind = "photo"
	KindShare Kind = "share"
)

// URLInfo contains information about a detected URL
type URLInfo struct {
	URL  string
	Kind Kind
}

type compiledPattern struct {
	regex *regexp.Regexp
	kind  Kind
}

// facebookHost matches the origin host with its common subdomain variants.
const facebookHost = `(?:https?://)?(?:www\.|m\.|web\.)?facebook\.com`

// patterns maps URL shapes to post kinds. Order matters: the first match
// wins, and the generic photo patterns must come after the specific ones.
var patterns = []compiledPattern{
	{regexp.MustCompile(`(?i)^` + facebookHost + `/reel/[0-9]+`), KindReel},
	{regexp.MustCompile(`(?i)^` + facebookHost + `/watch/?\?v=[0-9]+`), KindWatch},
	{regexp.MustCompile(`(?i)^` + facebookHost + `/[\w.\-]+/videos/\S+`), KindVideo},
	{regexp.MustCompile(`(?i)^` + facebookHost + `/photo(?:\.php)?\?fbid=[0-9]+`), KindPhoto},
	{regexp.MustCompile(`(?i)^` + facebookHost + `/[\w.\-]+/photos/\S+`), KindPhoto},
	{regexp.MustCompile(`(?i)^(?:https?://)?fb\.watch/[A-Za-z0-9]{10}/?`), KindShare},
}

// Detector provides centralized facebook URL detection
type Detector struct {
	patterns []compiledPattern
}

// New creates a new URL detector
func New() *Detector {
	return &Detector{patterns: patterns}
}

// DetectURLs finds all supported facebook URLs in content and returns them
// with their post kind
func (d *Detector) DetectURLs(content string) []URLInfo {
	var urls []URLInfo
	seen := make(map[string]bool)

	// Split content into words and check each for URL patterns
	words := strings.Fields(content)
	for _, word := range words {
		for _, pattern := range d.patterns {
			if pattern.regex.MatchString(word) {
				// Clean up the URL (remove any trailing punctuation)
				url := strings.TrimRight(word, ".,!?;:")

				// Avoid duplicates
				if !seen[url] {
					seen[url] = true
					urls = append(urls, URLInfo{
						URL:  url,
						Kind: pattern.kind,
					})
				}
				break
			}
		}
	}

	return urls
}

// IsSupported checks if a URL matches any supported pattern
func (d *Detector) IsSupported(url string) bool {
	for _, pattern := range d.patterns {
		if pattern.regex.MatchString(url) {
			return true
		}
	}
	return false
}

// Rewrite maps a detected URL onto the public fixer host, preserving the
// path and query. fb.watch share links keep only their code path.
func (d *Detector) Rewrite(info URLInfo, publicHost string) (string, bool) {
	raw := info.URL
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	// The fixer routes have no trailing-slash variants.
	rewritten := "https://" + publicHost + strings.TrimSuffix(parsed.Path, "/")
	if parsed.RawQuery != "" {
		rewritten += "?" + parsed.RawQuery
	}
	return rewritten, true
}
