package extractor

import (
	"fmt"

	"facebookfix/internal/domain"
	"facebookfix/internal/pkg/textutil"
)

// videoData locates the video-player block and returns its stream cache
// result. Shared by the reel and watch extraction passes, which read
// different paths out of the same payload.
func videoData(body string) (any, error) {
	block, err := Locate(MarkerVideoPlayer, body)
	if err != nil {
		return nil, err
	}
	return streamCacheResult(block)
}

// Reel extracts player metadata from a reel page.
func Reel(src *Source) (*domain.Metadata, error) {
	result, err := videoData(src.Body)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "reel", Err: err}
	}

	story, ok := dig(result, "data", "video", "creation_story")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "reel", Err: fmt.Errorf("no creation story in video data")}
	}
	shortForm, ok := dig(story, "short_form_video_context")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "reel", Err: fmt.Errorf("no short form video context")}
	}

	title, ok := digString(shortForm, "video_owner", "name")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "reel", Err: fmt.Errorf("no video owner name")}
	}

	playback, ok := dig(shortForm, "playback_video")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "reel", Err: fmt.Errorf("no playback video node")}
	}
	videoURL, err := playableURL(playback)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "reel", Err: err}
	}
	width, _ := digInt(playback, "width")
	height, _ := digInt(playback, "height")
	width, height = domain.ScaleDimensions(width, height)

	record := &domain.Metadata{
		Card:   domain.CardPlayer,
		Type:   domain.TypeVideo,
		Title:  title,
		URL:    src.URL,
		Video:  videoURL,
		Width:  width,
		Height: height,
	}

	// The message node is null on caption-less reels; that is a valid post.
	if text, ok := digString(story, "message", "text"); ok {
		record.Description = textutil.Shorten(text, textutil.DefaultLimit)
	}

	return record, nil
}
