package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"

	"facebookfix/internal/domain"
	"facebookfix/internal/extractor"
	"facebookfix/internal/pkg/useragent"
	"facebookfix/internal/web"
)

const (
	originBase    = "https://www.facebook.com"
	shortLinkBase = "https://fb.watch"
)

var (
	numericID = regexp.MustCompile(`^[0-9]+$`)
	shortCode = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)
)

// Fetcher retrieves origin page bodies.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// PostsHandler serves the post routes: classify the client, fetch the
// origin page, run the extraction chain, and either render the metadata
// page or redirect to the origin.
type PostsHandler struct {
	logger    *slog.Logger
	fetcher   Fetcher
	chain     *extractor.Chain
	templates *web.Templates
}

func NewPostsHandler(logger *slog.Logger, fetcher Fetcher, chain *extractor.Chain, templates *web.Templates) *PostsHandler {
	return &PostsHandler{
		logger:    logger,
		fetcher:   fetcher,
		chain:     chain,
		templates: templates,
	}
}

// HandleReel serves /reel/{id}.
func (h *PostsHandler) HandleReel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !numericID.MatchString(id) {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, originBase+"/reel/"+id, extractor.Reel)
}

// HandleWatch serves /watch?v={id}.
func (h *PostsHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("v")
	if !numericID.MatchString(id) {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, originBase+"/watch/?v="+id, extractor.Video)
}

// HandleUserVideo serves /{user}/videos/{id}.
func (h *PostsHandler) HandleUserVideo(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	id := r.PathValue("id")
	if !numericID.MatchString(id) {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, originBase+"/"+url.PathEscape(user)+"/videos/"+id, extractor.Video)
}

// HandleUserVideoSlug serves /{user}/videos/{slug}/{id}.
func (h *PostsHandler) HandleUserVideoSlug(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	slug := r.PathValue("slug")
	id := r.PathValue("id")
	if !numericID.MatchString(id) {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, originBase+"/"+url.PathEscape(user)+"/videos/"+url.PathEscape(slug)+"/"+id, extractor.Video)
}

// HandleUserPhoto serves /{user}/photos/{set}/{fbid}.
func (h *PostsHandler) HandleUserPhoto(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	set := r.PathValue("set")
	fbid := r.PathValue("fbid")
	if !numericID.MatchString(fbid) {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, originBase+"/"+url.PathEscape(user)+"/photos/"+url.PathEscape(set)+"/"+fbid, extractor.Photo)
}

// HandlePhotoQuery serves /photo?fbid= and /photo.php?fbid=.
func (h *PostsHandler) HandlePhotoQuery(w http.ResponseWriter, r *http.Request) {
	fbid := r.URL.Query().Get("fbid")
	if !numericID.MatchString(fbid) {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, originBase+"/photo.php?fbid="+fbid, extractor.Photo)
}

// HandleShortCode serves /{code} for fb.watch share codes. Anything that
// isn't exactly 10 alphanumerics is an unrecognized route.
func (h *PostsHandler) HandleShortCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !shortCode.MatchString(code) {
		http.NotFound(w, r)
		return
	}
	// Share codes are overwhelmingly video content; try both video shapes.
	h.serve(w, r, shortLinkBase+"/"+code+"/", extractor.Reel, extractor.Video)
}

// serve runs the common pipeline for one canonicalized origin URL.
func (h *PostsHandler) serve(w http.ResponseWriter, r *http.Request, originURL string, extractors ...extractor.TypeExtractor) {
	// Real browsers get the real page; only crawlers get synthesized
	// metadata. This must run before any origin fetch.
	if useragent.Classify(r.UserAgent(), r.URL.Path) == useragent.RouteBrowser {
		http.Redirect(w, r, originURL, http.StatusFound)
		return
	}

	body, err := h.fetcher.Fetch(r.Context(), originURL)
	if err != nil {
		// Never surface an upstream error; send the crawler to the post.
		h.logger.Warn("Origin fetch failed", "url", originURL, "error", err)
		http.Redirect(w, r, originURL, http.StatusFound)
		return
	}

	src := &extractor.Source{URL: originURL, Body: body}
	result := h.chain.Run(r.Context(), src, extractors...)

	switch {
	case result.Record != nil:
		h.render(w, r, result.Record)
	case result.Redirect != "":
		http.Redirect(w, r, originBase+result.Redirect, http.StatusFound)
	default:
		http.Redirect(w, r, originURL, http.StatusFound)
	}
}

// render writes the metadata page, including the oEmbed discovery link
// pointing back at this service.
func (h *PostsHandler) render(w http.ResponseWriter, r *http.Request, record *domain.Metadata) {
	query := url.Values{}
	query.Set("title", "Facebook")
	query.Set("user", record.Title)
	query.Set("link", record.URL)
	query.Set("type", string(record.Type))
	oembedURL := "https://" + r.Host + "/oembed.json?" + query.Encode()

	data := web.PageData{
		Record:    record,
		OEmbedURL: oembedURL,
	}
	if err := h.templates.Render(w, "base.html", data); err != nil {
		h.logger.Error("Failed to render metadata page", "url", record.URL, "error", err)
		http.Redirect(w, r, record.URL, http.StatusFound)
	}
}
