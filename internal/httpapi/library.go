package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/domain"
	"github.com/mfigueroa/lectrack/internal/library"
)

func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": s.Videos()})
}

func (h *Handler) AddVideo(w http.ResponseWriter, r *http.Request) {
	var v domain.Video
	if !decodeJSON(w, r, &v) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, s.AddVideo(v))
}

func (h *Handler) AddVideosBulk(w http.ResponseWriter, r *http.Request) {
	var list []domain.Video
	if !decodeJSON(w, r, &list) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	added := s.AddBulkVideos(list)
	writeJSON(w, http.StatusCreated, map[string]any{"videos": added, "count": len(added)})
}

func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	var upd library.VideoUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	v, err := s.UpdateVideo(chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.DeleteVideo(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type noteRequest struct {
	Timestamp int    `json:"timestamp"`
	Text      string `json:"text"`
}

func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	note, err := s.AddNote(chi.URLParam(r, "id"), req.Timestamp, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	note, err := s.UpdateNote(chi.URLParam(r, "id"), chi.URLParam(r, "noteID"), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.DeleteNote(chi.URLParam(r, "id"), chi.URLParam(r, "noteID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": s.Notes(chi.URLParam(r, "id"))})
}

func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, s.AddBookmark(chi.URLParam(r, "id"), req.Timestamp, req.Text))
}

func (h *Handler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.DeleteBookmark(chi.URLParam(r, "id"), chi.URLParam(r, "bookmarkID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookmarks": s.Bookmarks(chi.URLParam(r, "id"))})
}

func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlists": s.DerivePlaylists()})
}

func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	var key domain.PlaylistKey
	if !decodeJSON(w, r, &key) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if !s.DeletePlaylist(key) {
		writeError(w, apperr.New(apperr.KindNotFound, "Playlist not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	Key         domain.PlaylistKey `json:"key"`
	TargetIndex int                `json:"targetIndex"`
}

func (h *Handler) ReorderPlaylist(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ReorderPlaylist(req.Key, req.TargetIndex)
	writeJSON(w, http.StatusOK, map[string]any{"playlists": s.DerivePlaylists()})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories":   s.Categories(),
		"activeFilter": s.ActiveFilter(),
	})
}

type categoryRequest struct {
	Name    string `json:"name"`
	NewName string `json:"newName,omitempty"`
}

func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.AddCategory(req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"categories": s.Categories()})
}

func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.RenameCategory(req.Name, req.NewName); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.Categories()})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.DeleteCategory(req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.Categories()})
}

func (h *Handler) SetActiveFilter(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.SetActiveFilter(req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activeFilter": s.ActiveFilter()})
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	favorited := s.ToggleFavorite(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{"favorited": favorited})
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": s.Favorites()})
}

func (h *Handler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.AddToWatchHistory(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{"history": s.WatchHistory()})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": s.WatchHistory()})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":       s.Summary(),
		"streak":        s.CurrentStreak(),
		"dailyActivity": s.DailyActivity(),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		userID = constants.GuestUserID
	}
	h.Library.Logout(userID)
	w.WriteHeader(http.StatusNoContent)
}
