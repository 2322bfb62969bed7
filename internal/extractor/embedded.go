// Package extractor turns fetched origin HTML into canonical post metadata.
//
// The origin embeds its client-side application state as JSON literals
// wrapped in ScheduledApplyEach calls. Each extraction pass locates one such
// block by a marker pattern anchored on a substring unique to that block,
// decodes it, and descends a fixed path through the decoded graph. The
// marker patterns are kept as data so they can be updated as the origin's
// page format drifts, without touching extraction logic.
package extractor

import (
	"encoding/json"
	"fmt"
	"regexp"

	"facebookfix/internal/domain"
)

// Marker identifies one embedded JSON block of interest.
type Marker int

const (
	// MarkerVideoPlayer anchors on the video-player performance config;
	// shared by the reel and watch extractors.
	MarkerVideoPlayer Marker = iota
	// MarkerWatchMessage anchors on the feed-story message rendering strategy.
	MarkerWatchMessage
	// MarkerPhotoActor anchors on the feed-story photo actor strategy.
	MarkerPhotoActor
	// MarkerPhotoPreloader anchors on the hex-suffixed photo preloader
	// identifier. Occurrences preceded by a "preloaderID" key are an
	// unrelated field and must be skipped.
	MarkerPhotoPreloader
)

type markerPattern struct {
	re *regexp.Regexp
	// When anchor is set, a matched block is accepted only if it contains
	// an anchor occurrence not directly preceded by excludePrefix. This
	// stands in for a negative lookbehind, which RE2 cannot express.
	anchor        *regexp.Regexp
	excludePrefix string
}

var markerPatterns = map[Marker]markerPattern{
	MarkerVideoPlayer: {
		re: regexp.MustCompile(`\(ScheduledApplyEach,(\{"define":\[\["VideoPlayerShakaPerformanceLoggerConfig".+?)\);`),
	},
	MarkerWatchMessage: {
		re: regexp.MustCompile(`\(ScheduledApplyEach,(.+?"CometFeedStoryDefaultMessageRenderingStrategy".+?)\);`),
	},
	MarkerPhotoActor: {
		re: regexp.MustCompile(`\(ScheduledApplyEach,(.+?"__typename":"CometFeedStoryActorPhotoStrategy".+?)\);`),
	},
	MarkerPhotoPreloader: {
		re:            regexp.MustCompile(`\(ScheduledApplyEach,(.+?"adp_CometPhotoRootContentQueryRelayPreloader_[0-9a-f]{23}".+?)\);`),
		anchor:        regexp.MustCompile(`"adp_CometPhotoRootContentQueryRelayPreloader_[0-9a-f]{23}"`),
		excludePrefix: `"preloaderID":`,
	},
}

// relayStreamCache is the module name of the origin's dependency-injection
// cache; every extraction path pivots through it.
const relayStreamCache = "RelayPrefetchedStreamCache"

// Locate finds the embedded JSON block identified by marker and decodes it.
// A missing marker is domain.ErrNoData, meaning this extraction path is
// inapplicable. A matched span that is not valid JSON is a hard error: the
// origin's page format has changed.
func Locate(marker Marker, text string) (any, error) {
	pattern, ok := markerPatterns[marker]
	if !ok {
		return nil, fmt.Errorf("unknown marker %d", marker)
	}

	for _, match := range pattern.re.FindAllStringSubmatch(text, -1) {
		span := match[1]
		if pattern.anchor != nil && !anchorAccepted(span, pattern.anchor, pattern.excludePrefix) {
			continue
		}

		var value any
		if err := json.Unmarshal([]byte(span), &value); err != nil {
			return nil, fmt.Errorf("embedded block matched but failed to decode: %w", err)
		}
		return value, nil
	}

	return nil, domain.ErrNoData
}

// anchorAccepted reports whether span contains an anchor occurrence that is
// not directly preceded by the excluded key.
func anchorAccepted(span string, anchor *regexp.Regexp, excludePrefix string) bool {
	for _, loc := range anchor.FindAllStringIndex(span, -1) {
		start := loc[0]
		if start >= len(excludePrefix) && span[start-len(excludePrefix):start] == excludePrefix {
			continue
		}
		return true
	}
	return false
}

// FindModule scans the block's require list for the first entry whose first
// element equals name. Absence is domain.ErrNoData, never a panic: the list
// shape varies between page variants.
func FindModule(value any, name string) ([]any, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, domain.ErrNoData
	}
	require, ok := obj["require"].([]any)
	if !ok {
		return nil, domain.ErrNoData
	}

	for _, entry := range require {
		tuple, ok := entry.([]any)
		if !ok || len(tuple) == 0 {
			continue
		}
		if moduleName, ok := tuple[0].(string); ok && moduleName == name {
			return tuple, nil
		}
	}

	return nil, domain.ErrNoData
}

// streamCacheResult descends from a decoded block to the stream cache's
// result payload: require entry [3][1], then __bbox.result.
func streamCacheResult(value any) (any, error) {
	tuple, err := FindModule(value, relayStreamCache)
	if err != nil {
		return nil, err
	}
	if len(tuple) < 4 {
		return nil, domain.ErrNoData
	}
	args, ok := tuple[3].([]any)
	if !ok || len(args) < 2 {
		return nil, domain.ErrNoData
	}
	result, ok := dig(args[1], "__bbox", "result")
	if !ok {
		return nil, domain.ErrNoData
	}
	return result, nil
}

// dig walks nested JSON objects by key, returning false as soon as a key is
// missing or an intermediate value is not an object.
func dig(value any, keys ...string) (any, bool) {
	for _, key := range keys {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		value, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

// digString returns the string at the given path, or false when the path is
// missing, null, or not a string.
func digString(value any, keys ...string) (string, bool) {
	v, ok := dig(value, keys...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// digInt returns the number at the given path truncated to an int.
func digInt(value any, keys ...string) (int, bool) {
	v, ok := dig(value, keys...)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// element returns list[i] when value is a list long enough.
func element(value any, i int) (any, bool) {
	list, ok := value.([]any)
	if !ok || i >= len(list) {
		return nil, false
	}
	return list[i], true
}

// playableURL picks the high-definition playback URL, falling back to the
// standard one when the HD field is null. Both null is a data-shape
// violation: no record may carry an empty media URL.
func playableURL(media any) (string, error) {
	if hd, ok := digString(media, "playable_url_quality_hd"); ok && hd != "" {
		return hd, nil
	}
	if sd, ok := digString(media, "playable_url"); ok && sd != "" {
		return sd, nil
	}
	return "", fmt.Errorf("no playable URL in media node")
}
