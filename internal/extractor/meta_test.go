package extractor

import (
	"errors"
	"testing"

	"facebookfix/internal/domain"
)

func TestExtractMetaTitleOnly(t *testing.T) {
	src := &Source{
		URL:  "https://www.facebook.com/someone/posts/1",
		Body: `<html><head><meta property="og:title" content="Someone"/></head><body></body></html>`,
	}

	result, err := ExtractMeta(src, false)
	if err != nil {
		t.Fatalf("ExtractMeta() error = %v", err)
	}
	if result.Record == nil {
		t.Fatal("ExtractMeta() returned no record")
	}
	if result.Record.Title != "Someone" {
		t.Errorf("Title = %q, want %q", result.Record.Title, "Someone")
	}
	if result.Record.Type != domain.TypeLink {
		t.Errorf("Type = %q, want %q", result.Record.Type, domain.TypeLink)
	}
}

func TestExtractMetaNothingUsable(t *testing.T) {
	src := &Source{
		URL:  "https://www.facebook.com/someone/posts/1",
		Body: `<html><head><title>Log in</title></head><body></body></html>`,
	}

	_, err := ExtractMeta(src, false)
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("ExtractMeta() error = %v, want ErrNoData", err)
	}
}

func TestExtractMetaPlayerRedirect(t *testing.T) {
	body := `<html><head>
		<meta name="twitter:player" content="https://www.facebook.com/plugins/video.php?href=https%3A%2F%2Fwww.facebook.com%2Facme%2Fvideos%2F123%2F&width=560&height=315"/>
		<meta property="og:title" content="Acme"/>
	</head></html>`
	src := &Source{URL: "https://www.facebook.com/acme/posts/1", Body: body}

	t.Run("healthy page redirects to the player target", func(t *testing.T) {
		result, err := ExtractMeta(src, false)
		if err != nil {
			t.Fatalf("ExtractMeta() error = %v", err)
		}
		if result.Redirect != "/acme/videos/123/" {
			t.Errorf("Redirect = %q, want %q", result.Redirect, "/acme/videos/123/")
		}
		if result.Record != nil {
			t.Error("redirect result should carry no record")
		}
	})

	t.Run("failed type extraction uses the player directly", func(t *testing.T) {
		result, err := ExtractMeta(src, true)
		if err != nil {
			t.Fatalf("ExtractMeta() error = %v", err)
		}
		if result.Redirect != "" {
			t.Errorf("Redirect = %q, want none", result.Redirect)
		}
		record := result.Record
		if record == nil {
			t.Fatal("ExtractMeta() returned no record")
		}
		if record.Card != domain.CardPlayer || record.Type != domain.TypeVideo {
			t.Errorf("card/type = %q/%q, want player/video", record.Card, record.Type)
		}
		if record.Video == "" {
			t.Error("player record missing video URL")
		}
		if record.Width != 560 || record.Height != 315 {
			t.Errorf("dimensions = %dx%d, want 560x315", record.Width, record.Height)
		}
	})
}

func TestExtractMetaImageFiltering(t *testing.T) {
	tests := []struct {
		name      string
		image     string
		wantImage bool
	}{
		{name: "jpg accepted", image: "https://scontent.example/p.jpg?stp=dst", wantImage: true},
		{name: "png accepted", image: "https://scontent.example/p.png", wantImage: true},
		{name: "video poster endpoint rejected", image: "https://scontent.example/thumb.php?id=1", wantImage: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &Source{
				URL: "https://www.facebook.com/photo?fbid=1",
				Body: `<html><head>
					<meta property="og:title" content="Someone"/>
					<meta property="og:image" content="` + tt.image + `"/>
				</head></html>`,
			}
			result, err := ExtractMeta(src, false)
			if err != nil {
				t.Fatalf("ExtractMeta() error = %v", err)
			}
			record := result.Record
			if tt.wantImage {
				if record.Image != tt.image {
					t.Errorf("Image = %q, want %q", record.Image, tt.image)
				}
				if record.Card != domain.CardSummaryLargeImage || record.Type != domain.TypePhoto {
					t.Errorf("card/type = %q/%q, want summary_large_image/photo", record.Card, record.Type)
				}
			} else if record.Image != "" {
				t.Errorf("Image = %q, want rejected", record.Image)
			}
		})
	}
}

func TestExtractMetaStructuredDataOverride(t *testing.T) {
	body := `<html><head>
		<meta property="og:title" content="Facebook"/>
		<meta property="og:description" content="generic teaser"/>
		<meta property="og:image" content="https://scontent.example/small.jpg"/>
		<script type="application/ld+json">{"articleBody":"the full caption","author":{"name":"Jane Doe"},"image":{"contentUrl":"https://scontent.example/full.jpg"}}</script>
	</head></html>`
	src := &Source{URL: "https://www.facebook.com/photo?fbid=1", Body: body}

	result, err := ExtractMeta(src, false)
	if err != nil {
		t.Fatalf("ExtractMeta() error = %v", err)
	}
	record := result.Record
	if record.Title != "Jane Doe" {
		t.Errorf("Title = %q, want structured-data author", record.Title)
	}
	if record.Description != "the full caption" {
		t.Errorf("Description = %q, want structured-data body", record.Description)
	}
	if record.Image != "https://scontent.example/full.jpg" {
		t.Errorf("Image = %q, want structured-data image", record.Image)
	}
}

func TestExtractMetaMalformedStructuredData(t *testing.T) {
	body := `<html><head>
		<meta property="og:title" content="Someone"/>
		<meta property="og:image" content="https://scontent.example/p.jpg"/>
		<script type="application/ld+json">{not json</script>
	</head></html>`
	src := &Source{URL: "https://www.facebook.com/photo?fbid=1", Body: body}

	result, err := ExtractMeta(src, false)
	if err != nil {
		t.Fatalf("ExtractMeta() error = %v", err)
	}
	if result.Record.Title != "Someone" {
		t.Errorf("Title = %q, want meta-tag value kept", result.Record.Title)
	}
	if result.Record.Image != "https://scontent.example/p.jpg" {
		t.Errorf("Image = %q, want meta-tag value kept", result.Record.Image)
	}
}
