package extractor

import (
	"errors"
	"strings"
	"testing"

	"facebookfix/internal/domain"
)

const photoPreloaderBlock = `(ScheduledApplyEach,{"queryID":"adp_CometPhotoRootContentQueryRelayPreloader_0123456789abcdef0123456",` +
	`"require":[["RelayPrefetchedStreamCache",null,null,[null,{"__bbox":{"result":{"data":{"currMedia":{"image":{` +
	`"uri":"https://scontent.example/photo.jpg"}}}}}}]]]});`

const photoActorBlock = `(ScheduledApplyEach,{"instances":[{"__typename":"CometFeedStoryActorPhotoStrategy"}],` +
	`"require":[["RelayPrefetchedStreamCache",null,null,[null,{"__bbox":{"result":{"data":{` +
	`"owner":{"name":"Jane Doe"},"message":{"text":"vacation pics"}}}}}]]]});`

func TestPhoto(t *testing.T) {
	src := &Source{
		URL:  "https://www.facebook.com/jane/photos/a.1/2345",
		Body: photoPreloaderBlock + "\n" + photoActorBlock,
	}

	record, err := Photo(src)
	if err != nil {
		t.Fatalf("Photo() error = %v", err)
	}

	if record.Card != domain.CardSummaryLargeImage {
		t.Errorf("Card = %q, want %q", record.Card, domain.CardSummaryLargeImage)
	}
	if record.Type != domain.TypePhoto {
		t.Errorf("Type = %q, want %q", record.Type, domain.TypePhoto)
	}
	if record.Title != "Jane Doe" {
		t.Errorf("Title = %q, want %q", record.Title, "Jane Doe")
	}
	if record.Description != "vacation pics" {
		t.Errorf("Description = %q, want %q", record.Description, "vacation pics")
	}
	if record.Image != "https://scontent.example/photo.jpg" {
		t.Errorf("Image = %q", record.Image)
	}
	if record.URL != src.URL {
		t.Errorf("URL = %q, want %q", record.URL, src.URL)
	}
}

func TestPhotoRequiresBothBlocks(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "preloader block alone", body: photoPreloaderBlock},
		{name: "actor block alone", body: photoActorBlock},
		{name: "neither block", body: "<html></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Photo(&Source{URL: "https://www.facebook.com/photo?fbid=1", Body: tt.body})
			if !errors.Is(err, domain.ErrNoData) {
				t.Errorf("Photo() error = %v, want wrapped ErrNoData", err)
			}
		})
	}
}

func TestPhotoLongCaptionShortened(t *testing.T) {
	longCaption := strings.Repeat("wordy caption ", 40) // well over the meta budget
	actor := `(ScheduledApplyEach,{"instances":[{"__typename":"CometFeedStoryActorPhotoStrategy"}],` +
		`"require":[["RelayPrefetchedStreamCache",null,null,[null,{"__bbox":{"result":{"data":{` +
		`"owner":{"name":"Jane Doe"},"message":{"text":"` + longCaption + `"}}}}}]]]});`

	record, err := Photo(&Source{URL: "https://www.facebook.com/photo?fbid=1", Body: photoPreloaderBlock + "\n" + actor})
	if err != nil {
		t.Fatalf("Photo() error = %v", err)
	}
	if !strings.HasSuffix(record.Description, "...") {
		t.Errorf("Description = %q, want ellipsis-terminated", record.Description)
	}
	if got := len([]rune(record.Description)); got > 350 {
		t.Errorf("Description length = %d runes, want at most 350", got)
	}
}

func TestPhotoCaptionOptional(t *testing.T) {
	actor := `(ScheduledApplyEach,{"instances":[{"__typename":"CometFeedStoryActorPhotoStrategy"}],` +
		`"require":[["RelayPrefetchedStreamCache",null,null,[null,{"__bbox":{"result":{"data":{` +
		`"owner":{"name":"Jane Doe"},"message":null}}}}]]]});`

	record, err := Photo(&Source{URL: "https://www.facebook.com/photo?fbid=1", Body: photoPreloaderBlock + "\n" + actor})
	if err != nil {
		t.Fatalf("Photo() error = %v", err)
	}
	if record.Description != "" {
		t.Errorf("Description = %q, want empty", record.Description)
	}
}
