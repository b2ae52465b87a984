package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/library"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a taxonomy error onto the wire contract. Unclassified
// errors surface as 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	message := "Internal server error"

	var ae *apperr.Error
	if errors.As(err, &ae) {
		message = ae.Message
		if ae.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(ae.RetryAfter))
		}
	}

	writeJSON(w, kind.HTTPStatus(), map[string]any{
		"error":   string(kind),
		"message": message,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "Invalid request body", err))
		return false
	}
	return true
}

// session resolves the caller's library store from the X-User-ID header,
// defaulting to the guest scope.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*library.Store, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		userID = constants.GuestUserID
	}
	s, err := h.Library.Session(userID)
	if err != nil {
		h.Logger.WithUser(userID).Error("Failed to establish session", "error", err)
		writeError(w, apperr.Wrap(apperr.KindUnknown, "Failed to load library", err))
		return nil, false
	}
	return s, true
}
