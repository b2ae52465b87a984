// Package library holds the per-user source of truth for videos, categories,
// favorites, notes, bookmarks and activity counters, plus the playlist views
// derived from it. Each mutation persists the touched collection to the
// durable per-user scope and re-mirrors summary stats.
package library

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/domain"
	"github.com/mfigueroa/lectrack/internal/logger"
	"github.com/mfigueroa/lectrack/internal/mirror"
	"github.com/mfigueroa/lectrack/internal/store"
)

// seedCategories is the category list a brand new scope starts with.
var seedCategories = []string{"Programming", "Math", "Science", constants.DefaultCategory}

// Store is one user's library. All methods are safe for concurrent use.
type Store struct {
	userID string
	repo   *store.CollectionRepo
	mirror mirror.Pusher
	log    *logger.Logger
	now    func() time.Time

	mu            sync.Mutex
	initialized   bool
	videos        []domain.Video
	categories    []string
	favorites     []string
	watchHistory  []string
	notes         map[string][]domain.Note
	bookmarks     map[string][]domain.Bookmark
	dailyActivity map[string]int
	playlistOrder []domain.PlaylistKey
	activeFilter  string
}

// NewStore creates an unloaded store for userID. Call Load before mutating;
// writes are suppressed until the durable state has been hydrated.
func NewStore(userID string, repo *store.CollectionRepo, pusher mirror.Pusher, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	if pusher == nil {
		pusher = mirror.Noop{}
	}
	return &Store{
		userID:        userID,
		repo:          repo,
		mirror:        pusher,
		log:           log.WithComponent("library").WithUser(userID),
		now:           time.Now,
		notes:         make(map[string][]domain.Note),
		bookmarks:     make(map[string][]domain.Bookmark),
		dailyActivity: make(map[string]int),
		activeFilter:  constants.AllCategories,
	}
}

// SetNow replaces the clock, for tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load hydrates every collection from the durable scope, falling back to
// seed values where nothing was stored, then enables persistence.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(constants.CollectionVideos, &s.videos); err != nil {
		return err
	}
	if err := s.load(constants.CollectionCategories, &s.categories); err != nil {
		return err
	}
	if err := s.load(constants.CollectionFavorites, &s.favorites); err != nil {
		return err
	}
	if err := s.load(constants.CollectionWatchHistory, &s.watchHistory); err != nil {
		return err
	}
	if err := s.load(constants.CollectionNotes, &s.notes); err != nil {
		return err
	}
	if err := s.load(constants.CollectionBookmarks, &s.bookmarks); err != nil {
		return err
	}
	if err := s.load(constants.CollectionDailyActivity, &s.dailyActivity); err != nil {
		return err
	}
	if err := s.load(constants.CollectionPlaylistOrder, &s.playlistOrder); err != nil {
		return err
	}
	if err := s.load(constants.CollectionActiveFilter, &s.activeFilter); err != nil {
		return err
	}

	if len(s.categories) == 0 {
		s.categories = append([]string(nil), seedCategories...)
	}
	if s.notes == nil {
		s.notes = make(map[string][]domain.Note)
	}
	if s.bookmarks == nil {
		s.bookmarks = make(map[string][]domain.Bookmark)
	}
	if s.dailyActivity == nil {
		s.dailyActivity = make(map[string]int)
	}
	if s.activeFilter == "" {
		s.activeFilter = constants.AllCategories
	}

	s.initialized = true
	return nil
}

// load reads one collection. Absent rows leave the target untouched.
func (s *Store) load(collection string, target any) error {
	raw, err := s.repo.Get(collection, s.userID)
	if err != nil {
		return fmt.Errorf("load %s: %w", collection, err)
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// persist writes one collection to the durable scope. Must be called with
// the lock held. Failures are logged and swallowed; writes before Load are
// suppressed so defaults never clobber not-yet-loaded state.
func (s *Store) persist(collection string, v any) {
	if !s.initialized {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error("serialize collection", "collection", collection, "error", err)
		return
	}
	if err := s.repo.Set(collection, s.userID, string(raw)); err != nil {
		s.log.Error("persist collection", "collection", collection, "error", err)
	}
}

// pushStats mirrors the derived summary. Must be called with the lock held;
// the push itself runs detached so it can never block a mutation.
func (s *Store) pushStats() {
	if !s.initialized {
		return
	}
	summary := s.summaryLocked()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.MirrorHTTPTimeout)
		defer cancel()
		if err := s.mirror.Push(ctx, s.userID, summary); err != nil {
			s.log.Warn("stats mirror push failed", "error", err)
		}
	}()
}

// VideoUpdate is a partial update; nil fields are left unchanged.
type VideoUpdate struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Instructor      *string `json:"instructor,omitempty"`
	Category        *string `json:"category,omitempty"`
	ProgressPercent *int    `json:"progressPercent,omitempty"`
	Completed       *bool   `json:"completed,omitempty"`
}

// AddVideo ingests a single video, assigning identity and defaults.
func (s *Store) AddVideo(v domain.Video) domain.Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	v = s.prepare(v)
	s.videos = append(s.videos, v)
	s.persist(constants.CollectionVideos, s.videos)
	s.pushStats()
	return v
}

// AddBulkVideos ingests a playlist import. Zero-length input is a no-op.
func (s *Store) AddBulkVideos(list []domain.Video) []domain.Video {
	if len(list) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]domain.Video, 0, len(list))
	for _, v := range list {
		v = s.prepare(v)
		s.videos = append(s.videos, v)
		added = append(added, v)
	}
	s.persist(constants.CollectionVideos, s.videos)
	s.pushStats()
	return added
}

// prepare applies ingestion defaults. Must be called with the lock held.
func (s *Store) prepare(v domain.Video) domain.Video {
	v.Normalize()
	v.ID = uuid.NewString()
	v.ProgressPercent = 0
	v.Completed = false
	v.DateAdded = s.now()
	if v.Category == "" {
		v.Category = constants.DefaultCategory
	}
	if v.ThumbnailURL == "" {
		v.ThumbnailURL = placeholderThumbnail(v.Title)
	}
	return v
}

func placeholderThumbnail(title string) string {
	return "https://placehold.co/480x360?text=" + url.QueryEscape(title)
}

// UpdateVideo merges partial fields into a video. Progress changes and a
// transition into completed both count toward today's activity.
func (s *Store) UpdateVideo(id string, upd VideoUpdate) (domain.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Video{}, apperr.New(apperr.KindNotFound, "video not found")
	}

	v := &s.videos[idx]
	engaged := false

	if upd.Title != nil {
		v.Title = *upd.Title
	}
	if upd.Description != nil {
		v.Description = *upd.Description
	}
	if upd.Instructor != nil {
		v.Instructor = *upd.Instructor
	}
	if upd.Category != nil && *upd.Category != "" {
		v.Category = *upd.Category
	}
	if upd.ProgressPercent != nil && *upd.ProgressPercent != v.ProgressPercent {
		v.ProgressPercent = clampPercent(*upd.ProgressPercent)
		engaged = true
	}
	if upd.Completed != nil {
		if *upd.Completed && !v.Completed {
			engaged = true
		}
		v.Completed = *upd.Completed
	}

	if engaged {
		s.recordActivity()
	}
	s.persist(constants.CollectionVideos, s.videos)
	s.pushStats()
	return *v, nil
}

// DeleteVideo removes a single video. Dependent notes, bookmarks and
// favorite entries are left in place; only playlist deletion cascades.
func (s *Store) DeleteVideo(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return apperr.New(apperr.KindNotFound, "video not found")
	}
	s.videos = append(s.videos[:idx], s.videos[idx+1:]...)
	s.persist(constants.CollectionVideos, s.videos)
	s.pushStats()
	return nil
}

// Videos returns a copy of the video collection.
func (s *Store) Videos() []domain.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Video(nil), s.videos...)
}

// VideoByID looks a single video up.
func (s *Store) VideoByID(id string) (domain.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Video{}, false
	}
	return s.videos[idx], true
}

func (s *Store) indexOf(id string) int {
	for i := range s.videos {
		if s.videos[i].ID == id {
			return i
		}
	}
	return -1
}

// ToggleFavorite adds or removes id from favorites, reporting the new state.
// Only adding counts as engagement.
func (s *Store) ToggleFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.favorites {
		if fav == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			s.persist(constants.CollectionFavorites, s.favorites)
			return false
		}
	}
	s.favorites = append(s.favorites, id)
	s.recordActivity()
	s.persist(constants.CollectionFavorites, s.favorites)
	return true
}

// Favorites returns a copy of the favorite id list.
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.favorites...)
}

// AddToWatchHistory records a watch. Re-watching moves the id to the front
// instead of duplicating it; only a watch absent from the most recent
// entries counts as engagement.
func (s *Store) AddToWatchHistory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.watchHistory
	if len(recent) > constants.RecentWatchWindow {
		recent = recent[:constants.RecentWatchWindow]
	}
	engaged := true
	for _, h := range recent {
		if h == id {
			engaged = false
			break
		}
	}

	for i, h := range s.watchHistory {
		if h == id {
			s.watchHistory = append(s.watchHistory[:i], s.watchHistory[i+1:]...)
			break
		}
	}
	s.watchHistory = append([]string{id}, s.watchHistory...)
	if len(s.watchHistory) > constants.MaxWatchHistory {
		s.watchHistory = s.watchHistory[:constants.MaxWatchHistory]
	}

	if engaged {
		s.recordActivity()
	}
	s.persist(constants.CollectionWatchHistory, s.watchHistory)
}

// WatchHistory returns a copy of the history, most recent first.
func (s *Store) WatchHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.watchHistory...)
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
