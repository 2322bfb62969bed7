package extractor

import (
	"errors"
	"testing"

	"facebookfix/internal/domain"
)

const watchMessageBlock = `(ScheduledApplyEach,{"__elem":"CometFeedStoryDefaultMessageRenderingStrategy",` +
	`"require":[["RelayPrefetchedStreamCache",null,null,[null,{"__bbox":{"result":{"data":{"attachments":[{"media":{` +
	`"owner":{"name":"Acme Clips"},` +
	`"creation_story":{"comet_sections":{"message":{"story":{"message":{"text":"launch announcement"}}}}}}}]}}}}]]]});`

const watchPlayerBlock = `(ScheduledApplyEach,{"define":[["VideoPlayerShakaPerformanceLoggerConfig",[],{}]],` +
	`"require":[["RelayPrefetchedStreamCache",null,null,[null,{"__bbox":{"result":{"data":{"video":{"story":{"attachments":[{"media":{` +
	`"playable_url_quality_hd":"https://video.example/hd.mp4","playable_url":"https://video.example/sd.mp4","width":1920,"height":1080}}]}}}}}}]]]});`

func TestVideo(t *testing.T) {
	src := &Source{
		URL:  "https://www.facebook.com/acme/videos/1234567890",
		Body: watchMessageBlock + "\n" + watchPlayerBlock,
	}

	record, err := Video(src)
	if err != nil {
		t.Fatalf("Video() error = %v", err)
	}

	if record.Card != domain.CardPlayer {
		t.Errorf("Card = %q, want %q", record.Card, domain.CardPlayer)
	}
	if record.Title != "Acme Clips" {
		t.Errorf("Title = %q, want %q", record.Title, "Acme Clips")
	}
	if record.Description != "launch announcement" {
		t.Errorf("Description = %q, want %q", record.Description, "launch announcement")
	}
	if record.Video != "https://video.example/hd.mp4" {
		t.Errorf("Video = %q, want HD URL", record.Video)
	}
	if record.Width != 720 || record.Height != 405 {
		t.Errorf("dimensions = %dx%d, want 720x405", record.Width, record.Height)
	}
}

func TestVideoRequiresBothBlocks(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "message block alone", body: watchMessageBlock},
		{name: "player block alone", body: watchPlayerBlock},
		{name: "neither block", body: "<html></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Video(&Source{URL: "https://www.facebook.com/watch?v=1", Body: tt.body})
			if !errors.Is(err, domain.ErrNoData) {
				t.Errorf("Video() error = %v, want wrapped ErrNoData", err)
			}
		})
	}
}

func TestVideoMissingMessageText(t *testing.T) {
	// Unlike a reel, a watch post without story text is treated as a
	// data-shape failure so the chain can fall through.
	block := `(ScheduledApplyEach,{"__elem":"CometFeedStoryDefaultMessageRenderingStrategy",` +
		`"require":[["RelayPrefetchedStreamCache",null,null,[null,{"__bbox":{"result":{"data":{"attachments":[{"media":{` +
		`"owner":{"name":"Acme Clips"},"creation_story":{"comet_sections":{"message":null}}}}]}}}}]]]});`

	_, err := Video(&Source{URL: "https://www.facebook.com/watch?v=1", Body: block + "\n" + watchPlayerBlock})
	if err == nil {
		t.Fatal("Video() error = nil, want error for missing story text")
	}
}
