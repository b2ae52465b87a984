// Package importer orchestrates a playlist import: sanitize the id, fetch
// playlist metadata, paginate items, batch detail lookups and aggregate the
// result into library-ready video records.
package importer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/domain"
	"github.com/mfigueroa/lectrack/internal/logger"
	"github.com/mfigueroa/lectrack/internal/retry"
	"github.com/mfigueroa/lectrack/internal/sanitize"
	"github.com/mfigueroa/lectrack/internal/youtube"
)

// State names the phases of one import operation.
type State string

const (
	StateIDUnresolved    State = "id_unresolved"
	StateFetchingMeta    State = "fetching_playlist_meta"
	StateFetchingItems   State = "fetching_items"
	StateFetchingDetails State = "fetching_details"
	StateAggregated      State = "aggregated"
	StateFailed          State = "failed"
)

// API is the slice of the video API client the orchestrator consumes.
type API interface {
	GetPlaylist(ctx context.Context, id string) (*youtube.PlaylistMeta, error)
	ListItems(ctx context.Context, playlistID, pageToken string) (*youtube.ItemsPage, error)
	GetDetails(ctx context.Context, ids []string) (map[string]youtube.Detail, error)
}

// Result is a fully aggregated import, ready for bulk ingestion.
type Result struct {
	Info   domain.PlaylistInfo `json:"playlistInfo"`
	Videos []domain.Video      `json:"videos"`
}

type Orchestrator struct {
	api      API
	retryCfg retry.Config
	maxPages int
	log      *logger.Logger
}

// New creates an orchestrator. maxPages bounds pagination cost; values
// below 1 fall back to the default cap.
func New(api API, maxPages int, log *logger.Logger) *Orchestrator {
	if maxPages < 1 {
		maxPages = constants.DefaultMaxPages
	}
	if log == nil {
		log = logger.Default()
	}
	return &Orchestrator{
		api:      api,
		retryCfg: retry.DefaultConfig(),
		maxPages: maxPages,
		log:      log.WithComponent("importer"),
	}
}

// SetRetryConfig overrides the per-call retry schedule, for tests.
func (o *Orchestrator) SetRetryConfig(cfg retry.Config) {
	o.retryCfg = cfg
}

// Import runs the full pipeline for a playlist URL or bare id. Videos are
// grouped under category (defaulted when empty). Exactly one taxonomy kind
// is returned per failed import.
func (o *Orchestrator) Import(ctx context.Context, rawURL, category string) (*Result, error) {
	state := StateIDUnresolved
	importID := uuid.NewString()
	log := o.log.WithImport(importID, "")

	playlistID, ok := sanitize.ExtractPlaylistID(rawURL)
	if !ok {
		log.Warn("rejected playlist input", "state", string(state))
		return nil, apperr.New(apperr.KindInvalidInput, "invalid playlist URL or id")
	}
	log = o.log.WithImport(importID, playlistID)

	state = StateFetchingMeta
	meta, err := o.fetchMeta(ctx, playlistID)
	if err != nil {
		log.Warn("import failed", "state", string(state), "error", err)
		return nil, err
	}
	if meta.PrivacyStatus == "private" || meta.PrivacyStatus == "privacyStatusUnspecified" {
		log.Warn("import failed", "state", string(StateFailed), "reason", "restricted playlist")
		return nil, apperr.New(apperr.KindForbidden, "playlist is private or restricted")
	}

	state = StateFetchingItems
	items, err := o.fetchAllItems(ctx, playlistID, log)
	if err != nil {
		log.Warn("import failed", "state", string(state), "error", err)
		return nil, err
	}

	state = StateFetchingDetails
	details := o.fetchDetails(ctx, items, log)

	state = StateAggregated
	result := o.aggregate(playlistID, meta, items, details, category)
	log.Info("import aggregated",
		"state", string(state),
		"videos", len(result.Videos),
		"total_duration", result.Info.TotalDuration)
	return result, nil
}

func (o *Orchestrator) fetchMeta(ctx context.Context, playlistID string) (*youtube.PlaylistMeta, error) {
	var meta *youtube.PlaylistMeta
	err := retry.Do(ctx, o.retryCfg, apperr.IsRetryable, func(ctx context.Context) error {
		m, err := o.api.GetPlaylist(ctx, playlistID)
		if err != nil {
			return err
		}
		meta = m
		return nil
	})
	return meta, err
}

// fetchAllItems pages through the playlist in server token order, up to the
// page cap. Items without a public underlying video are dropped silently.
func (o *Orchestrator) fetchAllItems(ctx context.Context, playlistID string, log *logger.Logger) ([]youtube.Item, error) {
	var items []youtube.Item
	pageToken := ""

	for page := 0; page < o.maxPages; page++ {
		var resp *youtube.ItemsPage
		err := retry.Do(ctx, o.retryCfg, apperr.IsRetryable, func(ctx context.Context) error {
			p, err := o.api.ListItems(ctx, playlistID, pageToken)
			if err != nil {
				return err
			}
			resp = p
			return nil
		})
		if err != nil {
			return nil, err
		}

		for _, it := range resp.Items {
			if !importable(it) {
				continue
			}
			items = append(items, it)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if pageToken != "" {
		log.Warn("page cap reached, truncating import",
			"max_pages", o.maxPages, "items", len(items))
	}
	return items, nil
}

// importable filters out deleted and private playlist entries.
func importable(it youtube.Item) bool {
	if it.VideoID == "" {
		return false
	}
	if it.Title == "Deleted video" || it.Title == "Private video" {
		return false
	}
	if it.PrivacyStatus == "private" {
		return false
	}
	return true
}

// fetchDetails looks up durations in batches. A failed batch degrades to the
// unknown-duration sentinel for its videos instead of failing the import.
func (o *Orchestrator) fetchDetails(ctx context.Context, items []youtube.Item, log *logger.Logger) map[string]youtube.Detail {
	details := make(map[string]youtube.Detail, len(items))

	for start := 0; start < len(items); start += constants.DetailBatchSize {
		end := start + constants.DetailBatchSize
		if end > len(items) {
			end = len(items)
		}
		ids := make([]string, 0, end-start)
		for _, it := range items[start:end] {
			ids = append(ids, it.VideoID)
		}

		var batch map[string]youtube.Detail
		err := retry.Do(ctx, o.retryCfg, apperr.IsRetryable, func(ctx context.Context) error {
			d, err := o.api.GetDetails(ctx, ids)
			if err != nil {
				return err
			}
			batch = d
			return nil
		})
		if err != nil {
			log.Warn("detail batch failed, using duration sentinel",
				"batch_start", start+1, "batch_size", len(ids), "error", err)
			continue
		}
		for id, d := range batch {
			details[id] = d
		}
	}
	return details
}

func (o *Orchestrator) aggregate(playlistID string, meta *youtube.PlaylistMeta, items []youtube.Item, details map[string]youtube.Detail, category string) *Result {
	if category == "" {
		category = constants.DefaultCategory
	}
	originalURL := "https://www.youtube.com/playlist?list=" + playlistID

	videos := make([]domain.Video, 0, len(items))
	totalSeconds := 0

	for i, it := range items {
		v := domain.Video{
			Title:           it.Title,
			Description:     it.Description,
			Instructor:      meta.Channel,
			Category:        category,
			SourceURL:       "https://www.youtube.com/watch?v=" + it.VideoID,
			ExternalVideoID: it.VideoID,
			ThumbnailURL:    it.ThumbnailURL,
			Position:        i + 1,
			Source:          domain.SourceYouTubePlaylist,
			PlaylistTitle:   meta.Title,
			PlaylistID:      playlistID,
			OriginalURL:     originalURL,
		}

		if t, err := time.Parse(time.RFC3339, it.PublishedAt); err == nil {
			v.PublishedAt = &t
		}

		if d, ok := details[it.VideoID]; ok {
			if d.Title != "" {
				v.Title = d.Title
			}
			v.DurationSeconds = d.DurationSeconds
			v.Duration = domain.FormatClock(d.DurationSeconds)
			totalSeconds += d.DurationSeconds
		} else {
			v.Duration = constants.UnknownDuration
		}

		videos = append(videos, v)
	}

	return &Result{
		Info: domain.PlaylistInfo{
			ID:            playlistID,
			Title:         meta.Title,
			Channel:       meta.Channel,
			VideoCount:    len(videos),
			TotalDuration: domain.FormatTotalMinutes(totalSeconds / 60),
		},
		Videos: videos,
	}
}
