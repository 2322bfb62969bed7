package http

import (
	"log/slog"
	"net/http"

	"facebookfix/internal/extractor"
	"facebookfix/internal/http/handlers"
	"facebookfix/internal/http/middleware"
	"facebookfix/internal/web"
)

type Router struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	healthHandler *handlers.HealthHandler
	oembedHandler *handlers.OEmbedHandler
	postsHandler  *handlers.PostsHandler
}

func NewRouter(logger *slog.Logger, fetcher handlers.Fetcher, chain *extractor.Chain, templates *web.Templates) *Router {
	mux := http.NewServeMux()

	return &Router{
		mux:           mux,
		logger:        logger,
		healthHandler: handlers.NewHealthHandler(logger),
		oembedHandler: handlers.NewOEmbedHandler(logger),
		postsHandler:  handlers.NewPostsHandler(logger, fetcher, chain, templates),
	}
}

func (r *Router) SetupRoutes() http.Handler {
	// Health check
	r.mux.HandleFunc("GET /health", r.healthHandler.HandleHealth)

	// oEmbed discovery (no fetch, always crawler-routed)
	r.mux.HandleFunc("GET /oembed.json", r.oembedHandler.HandleOEmbed)

	// Post routes, most specific first
	r.mux.HandleFunc("GET /reel/{id}", r.postsHandler.HandleReel)
	r.mux.HandleFunc("GET /watch", r.postsHandler.HandleWatch)
	r.mux.HandleFunc("GET /photo", r.postsHandler.HandlePhotoQuery)
	r.mux.HandleFunc("GET /photo.php", r.postsHandler.HandlePhotoQuery)
	r.mux.HandleFunc("GET /{user}/videos/{id}", r.postsHandler.HandleUserVideo)
	r.mux.HandleFunc("GET /{user}/videos/{slug}/{id}", r.postsHandler.HandleUserVideoSlug)
	r.mux.HandleFunc("GET /{user}/photos/{set}/{fbid}", r.postsHandler.HandleUserPhoto)

	// fb.watch share codes
	r.mux.HandleFunc("GET /{code}", r.postsHandler.HandleShortCode)

	return middleware.RequestID(middleware.Logging(r.logger)(r.mux))
}
