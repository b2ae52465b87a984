package domain

import (
	"strings"
	"time"
)

// VideoSource identifies how a video entered the library
type VideoSource string

const (
	SourceManual          VideoSource = "manual"
	SourceYouTubePlaylist VideoSource = "youtube-playlist"
)

// Video is the stored unit of the library. Identity is an opaque id
// assigned at ingestion time; Position preserves playlist order.
type Video struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	DurationSeconds int         `json:"durationSeconds"`
	Duration        string      `json:"duration"`
	Instructor      string      `json:"instructor"`
	Category        string      `json:"category"`
	SourceURL       string      `json:"sourceUrl,omitempty"`
	ExternalVideoID string      `json:"externalVideoId,omitempty"`
	ThumbnailURL    string      `json:"thumbnailUrl,omitempty"`
	PublishedAt     *time.Time  `json:"publishedAt,omitempty"`
	Position        int         `json:"position"`
	ProgressPercent int         `json:"progressPercent"`
	Completed       bool        `json:"completed"`
	DateAdded       time.Time   `json:"dateAdded"`
	Source          VideoSource `json:"source"`
	PlaylistTitle   string      `json:"playlistTitle,omitempty"`
	PlaylistID      string      `json:"playlistId,omitempty"`
	OriginalURL     string      `json:"originalUrl,omitempty"`
}

// Normalize ensures video data is consistent before it enters the store.
func (v *Video) Normalize() {
	v.Title = strings.TrimSpace(v.Title)
	v.Instructor = strings.TrimSpace(v.Instructor)
	v.Category = strings.TrimSpace(v.Category)
	if v.Source == "" {
		v.Source = SourceManual
	}
	if v.ProgressPercent < 0 {
		v.ProgressPercent = 0
	}
	if v.ProgressPercent > 100 {
		v.ProgressPercent = 100
	}
	if v.Duration == "" && v.DurationSeconds > 0 {
		v.Duration = FormatClock(v.DurationSeconds)
	}
}

// Key returns the composite grouping key this video belongs to.
func (v *Video) Key() PlaylistKey {
	return PlaylistKey{
		Source:     v.Source,
		Instructor: v.Instructor,
		Category:   v.Category,
	}
}

// PlaylistKey is the composite identity of a derived playlist. Grouping on
// a struct rather than a joined string avoids delimiter collisions in
// instructor names.
type PlaylistKey struct {
	Source     VideoSource `json:"source"`
	Instructor string      `json:"instructor"`
	Category   string      `json:"category"`
}

// Playlist is a derived view over the video collection; it is never stored.
type Playlist struct {
	Key                  PlaylistKey `json:"key"`
	Title                string      `json:"title"`
	Instructor           string      `json:"instructor"`
	Category             string      `json:"category"`
	Source               VideoSource `json:"source"`
	OriginalURL          string      `json:"originalUrl,omitempty"`
	TotalVideos          int         `json:"totalVideos"`
	CompletedVideos      int         `json:"completedVideos"`
	TotalDurationMinutes int         `json:"totalDurationMinutes"`
	ImportDate           time.Time   `json:"importDate"`
}

// Note is a timestamped annotation attached to a video.
type Note struct {
	ID        string     `json:"id"`
	Timestamp int        `json:"timestamp"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Bookmark marks a position within a video.
type Bookmark struct {
	ID        string    `json:"id"`
	Timestamp int       `json:"timestamp"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary is the derived stats document mirrored to the remote store.
type Summary struct {
	TotalPlaylists     int     `json:"totalPlaylists"`
	CompletedPlaylists int     `json:"completedPlaylists"`
	StudyHours         float64 `json:"studyHours"`
	CompletionRate     float64 `json:"completionRate"`
}

// PlaylistInfo describes an imported playlist as returned by the fetch
// pipeline, before its videos are ingested.
type PlaylistInfo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Channel       string `json:"channel"`
	VideoCount    int    `json:"videoCount"`
	TotalDuration string `json:"totalDuration"`
}
