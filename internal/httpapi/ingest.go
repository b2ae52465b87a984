package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/sanitize"
)

// GetPlaylist fetches a playlist's metadata and videos without ingesting
// them into any library.
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Ingestor.Import(r.Context(), id, "")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type extractRequest struct {
	URL string `json:"url"`
}

func (h *Handler) ExtractPlaylistID(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, ok := sanitize.ExtractPlaylistID(req.URL)
	if !ok {
		writeError(w, apperr.New(apperr.KindInvalidInput, "Could not extract a playlist id from the given URL"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"playlistId": id})
}

type importRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}

// ImportPlaylist runs the fetch pipeline and bulk-ingests the result into
// the caller's library.
func (h *Handler) ImportPlaylist(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	result, err := h.Ingestor.Import(r.Context(), req.URL, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}

	added := s.AddBulkVideos(result.Videos)
	writeJSON(w, http.StatusCreated, map[string]any{
		"playlistInfo": result.Info,
		"count":        len(added),
	})
}
