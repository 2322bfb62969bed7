package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// oEmbedResponse is the discovery record served to preview renderers. Field
// order matters: consumers compare these payloads byte for byte.
type oEmbedResponse struct {
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	Version      string `json:"version"`
}

const (
	providerName = "FacebookFix"
	providerURL  = "https://github.com/beerpiss/FacebookFix"
)

type OEmbedHandler struct {
	logger *slog.Logger
}

func NewOEmbedHandler(logger *slog.Logger) *OEmbedHandler {
	return &OEmbedHandler{
		logger: logger,
	}
}

// HandleOEmbed synthesizes an oEmbed record from query parameters alone; no
// origin fetch happens here. The metadata page links to this endpoint so
// preview renderers can attribute the post.
func (h *OEmbedHandler) HandleOEmbed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	link := query.Get("link")
	if link == "" {
		http.Error(w, "Missing link parameter", http.StatusBadRequest)
		return
	}

	contentType := query.Get("type")
	if contentType == "" {
		contentType = "link"
	}

	response := oEmbedResponse{
		AuthorName:   query.Get("user"),
		AuthorURL:    link,
		ProviderName: providerName,
		ProviderURL:  providerURL,
		Title:        query.Get("title"),
		Type:         contentType,
		Version:      "1.0",
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode oEmbed response", "error", err)
	}
}
