// Package useragent decides whether a request comes from a link-preview
// crawler or from a real browser.
package useragent

import "regexp"

// Route is the classification outcome for an inbound request.
type Route int

const (
	// RouteBrowser means the client should be redirected to the real post.
	RouteBrowser Route = iota
	// RouteCrawler means the client gets the synthesized metadata page.
	RouteCrawler
)

// crawlerPattern matches User-Agent substrings of known bots, crawlers and
// link-preview generators. Matching is case-insensitive and deliberately
// broad; a false crawler match only means the client sees the metadata page
// with its refresh redirect instead of the post itself.
var crawlerPattern = regexp.MustCompile(`(?i)bot|facebook|embed|got|firefox/92|firefox/38|curl|wget|go-http|yahoo|generator|whatsapp|preview|link|proxy|vkshare|images|analyzer|index|crawl|spider|python|cfnetwork|node|iframely`)

// oEmbedPath always serves machine-readable metadata, so it never redirects.
const oEmbedPath = "/oembed.json"

// Classify routes a request by its User-Agent header and path. It performs
// no I/O and must run before any origin fetch.
func Classify(userAgent, path string) Route {
	if path == oEmbedPath {
		return RouteCrawler
	}
	if crawlerPattern.MatchString(userAgent) {
		return RouteCrawler
	}
	return RouteBrowser
}
