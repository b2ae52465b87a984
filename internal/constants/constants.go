// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort        = "8080"
	DefaultDBPath      = "lectrack.db"
	DefaultYouTubeURL  = "https://www.googleapis.com/youtube/v3"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultRetryCount  = 3
	DefaultRetryBase   = 1 * time.Second
	DefaultOutboundRPS = 4.0
	MirrorHTTPTimeout  = 5 * time.Second
)

// Rate limiting on the ingestion boundary
const (
	DefaultRateLimitWindow = 60 * time.Second
	DefaultRateLimitMax    = 100
)

// Playlist import bounds (the external API serves 50 items per page
// and accepts at most 50 ids per detail lookup)
const (
	ItemsPerPage    = 50
	DetailBatchSize = 50
	DefaultMaxPages = 20
)

// Library limits
const (
	MaxWatchHistory   = 20
	MaxDailyActivity  = 15
	RecentWatchWindow = 3
	MinPlaylistIDLen  = 10
	MaxPlaylistIDLen  = 50
)

// Sentinel values
const (
	GuestUserID     = "guest"
	AllCategories   = "All"
	DefaultCategory = "Other"
	UnknownDuration = "0:00"
)

// Collection names used as durable key prefixes
const (
	CollectionVideos        = "videos"
	CollectionCategories    = "categories"
	CollectionFavorites     = "favorites"
	CollectionWatchHistory  = "watch_history"
	CollectionNotes         = "notes"
	CollectionBookmarks     = "bookmarks"
	CollectionDailyActivity = "daily_activity"
	CollectionPlaylistOrder = "playlist_order"
	CollectionActiveFilter  = "active_filter"
)
