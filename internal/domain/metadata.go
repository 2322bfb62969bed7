package domain

// Card is the presentation hint consumed by link-preview renderers.
type Card string

const (
	CardSummaryLargeImage Card = "summary_large_image"
	CardPlayer            Card = "player"
)

// ContentType is the oEmbed-style content type of a post.
type ContentType string

const (
	TypePhoto ContentType = "photo"
	TypeVideo ContentType = "video"
	TypeLink  ContentType = "link"
)

// MaxEmbedWidth is the widest dimension most chat clients will render inline.
const MaxEmbedWidth = 720

// Metadata is the canonical record synthesized for a crawler request.
// URL is always the fully-qualified origin post URL, never the proxy-facing one.
type Metadata struct {
	Card        Card
	Type        ContentType
	Title       string
	Description string
	URL         string
	Image       string
	Video       string
	Width       int
	Height      int
}

// Valid reports whether the record carries at least one renderable field.
// A record with none of title/description/image/video is an extraction
// failure and must not be served.
func (m *Metadata) Valid() bool {
	return m.Title != "" || m.Description != "" || m.Image != "" || m.Video != ""
}

// ScaleDimensions clamps width to MaxEmbedWidth, rescaling height
// proportionally. Both values are truncated to integers.
func ScaleDimensions(width, height int) (int, int) {
	if width > MaxEmbedWidth {
		height = int(float64(height) * (float64(MaxEmbedWidth) / float64(width)))
		width = MaxEmbedWidth
	}
	return width, height
}
