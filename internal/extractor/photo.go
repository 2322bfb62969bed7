package extractor

import (
	"fmt"

	"facebookfix/internal/domain"
	"facebookfix/internal/pkg/textutil"
)

// Photo extracts still-image metadata from a photo page. The image URI and
// the owner/caption data live in two independent blocks; both markers must
// be present.
func Photo(src *Source) (*domain.Metadata, error) {
	photoBlock, err := Locate(MarkerPhotoPreloader, src.Body)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "photo", Err: err}
	}
	photoResult, err := streamCacheResult(photoBlock)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "photo", Err: err}
	}
	imageURI, ok := digString(photoResult, "data", "currMedia", "image", "uri")
	if !ok || imageURI == "" {
		return nil, &domain.ExtractorError{Extractor: "photo", Err: fmt.Errorf("no image URI in current media")}
	}

	actorBlock, err := Locate(MarkerPhotoActor, src.Body)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "photo", Err: err}
	}
	actorResult, err := streamCacheResult(actorBlock)
	if err != nil {
		return nil, &domain.ExtractorError{Extractor: "photo", Err: err}
	}
	data, ok := dig(actorResult, "data")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "photo", Err: fmt.Errorf("no data in actor block")}
	}
	title, ok := digString(data, "owner", "name")
	if !ok {
		return nil, &domain.ExtractorError{Extractor: "photo", Err: fmt.Errorf("no owner name")}
	}

	record := &domain.Metadata{
		Card:  domain.CardSummaryLargeImage,
		Type:  domain.TypePhoto,
		Title: title,
		URL:   src.URL,
		Image: imageURI,
	}

	// Caption-less photos carry a null message node.
	if text, ok := digString(data, "message", "text"); ok {
		record.Description = textutil.Shorten(text, textutil.MetaLimit)
	}

	return record, nil
}
