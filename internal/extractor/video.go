package extractor

import (
	"fmt"

	"facebookfix/internal/domain"
	"facebookfix/internal/pkg/textutil"
)

// watchMedia locates the feed-story message block of a watch/video page and
// descends to its attachment media node.
func watchMedia(body string) (any, error) {
	block, err := Locate(MarkerWatchMessage, body)
	if err != nil {
		return nil, err
	}
	result, err := streamCacheResult(block)
	if err != nil {
		return nil, err
	}

	attachments, ok := dig(result, "data", "attachments")
	if !ok {
		return nil, fmt.Errorf("no attachments in watch metadata")
	}
	first, ok := element(attachments, 0)
	if !ok {
		return nil, fmt.Errorf("empty attachments in watch metadata")
	}
	media, ok := dig(first, "media")
	if !ok {
		return nil, fmt.Errorf("no media in watch attachment")
	}
	return media, nil
}

// Video extracts player metadata from a watch/video page. Unlike a reel,
// the owner/message data and the playback data live in two independent
// blocks of the same page; both must be present.
func Video(src *Source) (*domain.Metadata, error) {
	media, err := watchMedia(src.Body)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "video", Err: err}
	}

	title, ok := digString(media, "owner", "name")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "video", Err: fmt.Errorf("no owner name")}
	}
	description, ok := digString(media, "creation_story", "comet_sections", "message", "story", "message", "text")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "video", Err: fmt.Errorf("no story message text")}
	}

	playerResult, err := videoData(src.Body)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "video", Err: err}
	}
	attachments, ok := dig(playerResult, "data", "video", "story", "attachments")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "video", Err: fmt.Errorf("no story attachments in video data")}
	}
	first, ok := element(attachments, 0)
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "video", Err: fmt.Errorf("empty story attachments in video data")}
	}
	playerMedia, ok := dig(first, "media")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "video", Err: fmt.Errorf("no media in video attachment")}
	}

	videoURL, err := playableURL(playerMedia)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "video", Err: err}
	}
	width, _ := digInt(playerMedia, "width")
	height, _ := digInt(playerMedia, "height")
	width, height = domain.ScaleDimensions(width, height)

	return &domain.Metadata{
		Card:        domain.CardPlayer,
		Type:        domain.TypeVideo,
		Title:       title,
		Description: textutil.Shorten(description, textutil.DefaultLimit),
		URL:         src.URL,
		Video:       videoURL,
		Width:       width,
		Height:      height,
	}, nil
}
