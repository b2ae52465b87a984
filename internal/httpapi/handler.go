package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mfigueroa/lectrack/internal/config"
	"github.com/mfigueroa/lectrack/internal/importer"
	"github.com/mfigueroa/lectrack/internal/library"
	"github.com/mfigueroa/lectrack/internal/logger"
	"github.com/mfigueroa/lectrack/internal/ratelimit"
)

// Ingestor runs the playlist fetch pipeline.
type Ingestor interface {
	Import(ctx context.Context, rawURL, category string) (*importer.Result, error)
}

type Handler struct {
	Config   *config.Config
	Ingestor Ingestor
	Library  *library.Manager
	Limiter  *ratelimit.Limiter
	Logger   *logger.Logger
}

func NewHandler(cfg *config.Config, ing Ingestor, lib *library.Manager, lim *ratelimit.Limiter, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		Config:   cfg,
		Ingestor: ing,
		Library:  lib,
		Limiter:  lim,
		Logger:   log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	// Routes that spend upstream API quota sit behind the limiter.
	limited := r.With(h.Limiter.Middleware)
	limited.Get("/playlist/{id}", h.GetPlaylist)
	limited.Post("/extract-playlist-id", h.ExtractPlaylistID)
	limited.Post("/library/import", h.ImportPlaylist)

	r.Get("/library/videos", h.ListVideos)
	r.Post("/library/videos", h.AddVideo)
	r.Post("/library/videos/bulk", h.AddVideosBulk)
	r.Patch("/library/videos/{id}", h.UpdateVideo)
	r.Delete("/library/videos/{id}", h.DeleteVideo)

	r.Post("/library/videos/{id}/notes", h.AddNote)
	r.Patch("/library/videos/{id}/notes/{noteID}", h.UpdateNote)
	r.Delete("/library/videos/{id}/notes/{noteID}", h.DeleteNote)
	r.Get("/library/videos/{id}/notes", h.ListNotes)
	r.Post("/library/videos/{id}/bookmarks", h.AddBookmark)
	r.Delete("/library/videos/{id}/bookmarks/{bookmarkID}", h.DeleteBookmark)
	r.Get("/library/videos/{id}/bookmarks", h.ListBookmarks)

	r.Get("/library/playlists", h.ListPlaylists)
	r.Delete("/library/playlists", h.DeletePlaylist)
	r.Post("/library/playlists/reorder", h.ReorderPlaylist)

	r.Get("/library/categories", h.ListCategories)
	r.Post("/library/categories", h.AddCategory)
	r.Patch("/library/categories", h.RenameCategory)
	r.Delete("/library/categories", h.DeleteCategory)
	r.Post("/library/categories/filter", h.SetActiveFilter)

	r.Post("/library/favorites/{id}", h.ToggleFavorite)
	r.Get("/library/favorites", h.ListFavorites)
	r.Post("/library/history/{id}", h.RecordWatch)
	r.Get("/library/history", h.GetHistory)
	r.Get("/library/stats", h.Stats)

	r.Post("/session/logout", h.Logout)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"hasApiKey": h.Config.HasAPIKey(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
