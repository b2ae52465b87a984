package library

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/domain"
)

// AddNote attaches a timestamped note to a video.
func (s *Store) AddNote(videoID string, timestamp int, text string) (domain.Note, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Note{}, apperr.New(apperr.KindInvalidInput, "note text cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := domain.Note{
		ID:        uuid.NewString(),
		Timestamp: timestamp,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.notes[videoID] = append(s.notes[videoID], note)
	s.recordActivity()
	s.persist(constants.CollectionNotes, s.notes)
	return note, nil
}

// UpdateNote replaces a note's text, stamping UpdatedAt. Editing an existing
// note is not fresh engagement.
func (s *Store) UpdateNote(videoID, noteID, text string) (domain.Note, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Note{}, apperr.New(apperr.KindInvalidInput, "note text cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.notes[videoID]
	for i := range list {
		if list[i].ID == noteID {
			now := s.now()
			list[i].Text = text
			list[i].UpdatedAt = &now
			s.persist(constants.CollectionNotes, s.notes)
			return list[i], nil
		}
	}
	return domain.Note{}, apperr.New(apperr.KindNotFound, "note not found")
}

// DeleteNote removes one note from a video.
func (s *Store) DeleteNote(videoID, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.notes[videoID]
	for i := range list {
		if list[i].ID == noteID {
			s.notes[videoID] = append(list[:i], list[i+1:]...)
			if len(s.notes[videoID]) == 0 {
				delete(s.notes, videoID)
			}
			s.persist(constants.CollectionNotes, s.notes)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "note not found")
}

// Notes returns a copy of a video's notes in insertion order.
func (s *Store) Notes(videoID string) []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Note(nil), s.notes[videoID]...)
}

// AddBookmark marks a position in a video.
func (s *Store) AddBookmark(videoID string, timestamp int, text string) domain.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()

	bm := domain.Bookmark{
		ID:        uuid.NewString(),
		Timestamp: timestamp,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.bookmarks[videoID] = append(s.bookmarks[videoID], bm)
	s.recordActivity()
	s.persist(constants.CollectionBookmarks, s.bookmarks)
	return bm
}

// DeleteBookmark removes one bookmark from a video.
func (s *Store) DeleteBookmark(videoID, bookmarkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.bookmarks[videoID]
	for i := range list {
		if list[i].ID == bookmarkID {
			s.bookmarks[videoID] = append(list[:i], list[i+1:]...)
			if len(s.bookmarks[videoID]) == 0 {
				delete(s.bookmarks, videoID)
			}
			s.persist(constants.CollectionBookmarks, s.bookmarks)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "bookmark not found")
}

// Bookmarks returns a copy of a video's bookmarks in insertion order.
func (s *Store) Bookmarks(videoID string) []domain.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Bookmark(nil), s.bookmarks[videoID]...)
}
