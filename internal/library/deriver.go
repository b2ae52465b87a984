package library

import (
	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/domain"
)

// DerivePlaylists groups the video collection by its composite key in a
// single pass. Playlists are views: they carry no identity beyond the key.
func (s *Store) DerivePlaylists() []domain.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.derivePlaylistsLocked()
}

func (s *Store) derivePlaylistsLocked() []domain.Playlist {
	grouped := make(map[domain.PlaylistKey]*domain.Playlist)
	var firstSeen []domain.PlaylistKey

	for i := range s.videos {
		v := &s.videos[i]
		key := v.Key()

		pl, ok := grouped[key]
		if !ok {
			title := v.PlaylistTitle
			if title == "" {
				title = v.Instructor + " · " + v.Category
			}
			pl = &domain.Playlist{
				Key:         key,
				Title:       title,
				Instructor:  key.Instructor,
				Category:    key.Category,
				Source:      key.Source,
				OriginalURL: v.OriginalURL,
				ImportDate:  v.DateAdded,
			}
			grouped[key] = pl
			firstSeen = append(firstSeen, key)
		}

		pl.TotalVideos++
		if v.Completed {
			pl.CompletedVideos++
		}
		pl.TotalDurationMinutes += v.DurationSeconds / 60
		if v.DateAdded.Before(pl.ImportDate) {
			pl.ImportDate = v.DateAdded
		}
	}

	ordered := make([]domain.Playlist, 0, len(grouped))
	emitted := make(map[domain.PlaylistKey]bool, len(grouped))
	for _, key := range s.playlistOrder {
		if pl, ok := grouped[key]; ok && !emitted[key] {
			ordered = append(ordered, *pl)
			emitted[key] = true
		}
	}
	for _, key := range firstSeen {
		if !emitted[key] {
			ordered = append(ordered, *grouped[key])
		}
	}
	return ordered
}

// DeletePlaylist removes every video matching key together with all of its
// dependent records: favorites, watch history, notes and bookmarks. It
// reports false when no video matched.
func (s *Store) DeletePlaylist(key domain.PlaylistKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[string]bool)
	kept := s.videos[:0]
	for _, v := range s.videos {
		if v.Key() == key {
			removed[v.ID] = true
			continue
		}
		kept = append(kept, v)
	}
	if len(removed) == 0 {
		return false
	}
	s.videos = kept

	s.favorites = dropIDs(s.favorites, removed)
	s.watchHistory = dropIDs(s.watchHistory, removed)
	for id := range removed {
		delete(s.notes, id)
		delete(s.bookmarks, id)
	}
	for i, k := range s.playlistOrder {
		if k == key {
			s.playlistOrder = append(s.playlistOrder[:i], s.playlistOrder[i+1:]...)
			break
		}
	}

	s.persist(constants.CollectionVideos, s.videos)
	s.persist(constants.CollectionFavorites, s.favorites)
	s.persist(constants.CollectionWatchHistory, s.watchHistory)
	s.persist(constants.CollectionNotes, s.notes)
	s.persist(constants.CollectionBookmarks, s.bookmarks)
	s.persist(constants.CollectionPlaylistOrder, s.playlistOrder)
	s.pushStats()
	return true
}

func dropIDs(list []string, removed map[string]bool) []string {
	kept := list[:0]
	for _, id := range list {
		if !removed[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

// ReorderPlaylist moves key to targetIndex in the stable display ordering.
// Video content is untouched.
func (s *Store) ReorderPlaylist(key domain.PlaylistKey, targetIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.derivePlaylistsLocked()
	keys := make([]domain.PlaylistKey, 0, len(current))
	for _, pl := range current {
		if pl.Key != key {
			keys = append(keys, pl.Key)
		}
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(keys) {
		targetIndex = len(keys)
	}
	keys = append(keys[:targetIndex], append([]domain.PlaylistKey{key}, keys[targetIndex:]...)...)

	s.playlistOrder = keys
	s.persist(constants.CollectionPlaylistOrder, s.playlistOrder)
}

// Summary recomputes the derived stats document.
func (s *Store) Summary() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

// summaryLocked derives the mirrored stats. Study hours weight each video's
// duration by its watch progress.
func (s *Store) summaryLocked() domain.Summary {
	playlists := s.derivePlaylistsLocked()

	sum := domain.Summary{TotalPlaylists: len(playlists)}
	for _, pl := range playlists {
		if pl.TotalVideos > 0 && pl.CompletedVideos == pl.TotalVideos {
			sum.CompletedPlaylists++
		}
	}

	totalVideos := 0
	completedVideos := 0
	progressSeconds := 0.0
	for i := range s.videos {
		v := &s.videos[i]
		totalVideos++
		if v.Completed {
			completedVideos++
		}
		progressSeconds += float64(v.DurationSeconds) * float64(v.ProgressPercent) / 100
	}

	sum.StudyHours = progressSeconds / 3600
	if totalVideos > 0 {
		sum.CompletionRate = float64(completedVideos) / float64(totalVideos) * 100
	}
	return sum
}
