package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/config"
	"github.com/mfigueroa/lectrack/internal/domain"
	"github.com/mfigueroa/lectrack/internal/importer"
	"github.com/mfigueroa/lectrack/internal/library"
	"github.com/mfigueroa/lectrack/internal/ratelimit"
	"github.com/mfigueroa/lectrack/internal/store"
)

type fakeIngestor struct {
	result *importer.Result
	err    error
	calls  int
}

func (f *fakeIngestor) Import(ctx context.Context, rawURL, category string) (*importer.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func sampleResult() *importer.Result {
	return &importer.Result{
		Info: domain.PlaylistInfo{
			ID:      "PLlecture000000000000000000000000",
			Title:   "Operating Systems",
			Channel: "Prof. Chen",
		},
		Videos: []domain.Video{
			{Title: "Processes", Instructor: "Prof. Chen", Category: "Programming", DurationSeconds: 1800},
			{Title: "Threads", Instructor: "Prof. Chen", Category: "Programming", DurationSeconds: 2100},
		},
	}
}

func newTestServer(t *testing.T, ing Ingestor) (*httptest.Server, *library.Manager) {
	t.Helper()

	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mgr := library.NewManager(store.NewCollectionRepo(db), nil, nil)
	cfg := &config.Config{YouTubeAPIKey: "AIzaSyTestKeyTestKeyTestKeyTestKey123"}
	h := NewHandler(cfg, ing, mgr, ratelimit.New(time.Minute, 1000), nil)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, mgr
}

func doJSON(t *testing.T, method, url, body, userID string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp, payload
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, &fakeIngestor{result: sampleResult()})

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/health", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["hasApiKey"] != true {
		t.Errorf("hasApiKey = %v, want true", body["hasApiKey"])
	}
}

func TestGetPlaylist(t *testing.T) {
	ts, _ := newTestServer(t, &fakeIngestor{result: sampleResult()})

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/playlist/PLabc", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	info, _ := body["playlistInfo"].(map[string]any)
	if info["title"] != "Operating Systems" {
		t.Errorf("playlist title = %v", info["title"])
	}
	videos, _ := body["videos"].([]any)
	if len(videos) != 2 {
		t.Errorf("videos = %d, want 2", len(videos))
	}
}

func TestGetPlaylistErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"not found", apperr.New(apperr.KindNotFound, "Playlist not found"), 404, "not_found"},
		{"private", apperr.New(apperr.KindForbidden, "Playlist is private"), 403, "forbidden"},
		{"quota", apperr.New(apperr.KindQuotaExceeded, "Quota exhausted"), 403, "quota_exceeded"},
		{"bad input", apperr.New(apperr.KindInvalidInput, "Invalid playlist URL"), 400, "invalid_input"},
		{"timeout", apperr.New(apperr.KindTimeout, "Upstream timed out"), 408, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t, &fakeIngestor{err: tt.err})
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/playlist/PLabc", "", "")
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if body["error"] != tt.wantKind {
				t.Errorf("error = %v, want %v", body["error"], tt.wantKind)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	ts, _ := newTestServer(t, &fakeIngestor{})

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/extract-playlist-id",
		`{"url":"https://www.youtube.com/playlist?list=PLlecture000000000000000000000000"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["playlistId"] != "PLlecture000000000000000000000000" {
		t.Errorf("playlistId = %v", body["playlistId"])
	}

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/extract-playlist-id", `{"url":"not a url"}`, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status for garbage = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "invalid_input" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestImportPlaylistIngests(t *testing.T) {
	ts, _ := newTestServer(t, &fakeIngestor{result: sampleResult()})

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/library/import",
		`{"url":"https://www.youtube.com/playlist?list=PLlecture000000000000000000000000","category":"Programming"}`, "alice")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d: %v", resp.StatusCode, body)
	}
	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/library/videos", "", "alice")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if videos, _ := body["videos"].([]any); len(videos) != 2 {
		t.Errorf("alice's videos = %d, want 2", len(videos))
	}
}

func TestUserScoping(t *testing.T) {
	ts, _ := newTestServer(t, &fakeIngestor{})

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/library/videos",
		`{"title":"Only Alice","instructor":"Ada","category":"Math"}`, "alice")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	_, body := doJSON(t, http.MethodGet, ts.URL+"/library/videos", "", "bob")
	if videos, _ := body["videos"].([]any); len(videos) != 0 {
		t.Errorf("bob sees %d of alice's videos", len(videos))
	}

	// Missing header falls back to the guest scope, not alice's.
	_, body = doJSON(t, http.MethodGet, ts.URL+"/library/videos", "", "")
	if videos, _ := body["videos"].([]any); len(videos) != 0 {
		t.Errorf("guest sees %d of alice's videos", len(videos))
	}
}

func TestUpdateVideoNotFound(t *testing.T) {
	ts, _ := newTestServer(t, &fakeIngestor{})

	resp, body := doJSON(t, http.MethodPatch, ts.URL+"/library/videos/nope",
		`{"progressPercent":50}`, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if body["error"] != "not_found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestCategoryEndpoints(t *testing.T) {
	ts, _ := newTestServer(t, &fakeIngestor{})

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/library/categories", `{"name":"History"}`, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPatch, ts.URL+"/library/categories",
		`{"name":"History","newName":"World History"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rename status = %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodDelete, ts.URL+"/library/categories", `{"name":"All"}`, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("deleting All: status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "invalid_input" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestRateLimitedRoutes(t *testing.T) {
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mgr := library.NewManager(store.NewCollectionRepo(db), nil, nil)
	h := NewHandler(&config.Config{}, &fakeIngestor{result: sampleResult()}, mgr,
		ratelimit.New(time.Minute, 2), nil)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/playlist/PLabc", "", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, resp.StatusCode)
		}
	}

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/playlist/PLabc", "", "")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if body["error"] != "rate_limited" {
		t.Errorf("error = %v", body["error"])
	}
	if _, ok := body["retryAfterSeconds"]; !ok {
		t.Error("missing retryAfterSeconds")
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	// Library reads stay open when the ingestion budget is spent.
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/library/videos", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("library route status = %d, want 200", resp.StatusCode)
	}
}

func TestLogout(t *testing.T) {
	ts, mgr := newTestServer(t, &fakeIngestor{})

	doJSON(t, http.MethodPost, ts.URL+"/library/videos",
		`{"title":"Persisted","instructor":"Ada","category":"Math"}`, "alice")
	if mgr.ActiveSessions() != 1 {
		t.Fatalf("ActiveSessions = %d, want 1", mgr.ActiveSessions())
	}

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/session/logout", "", "alice")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if mgr.ActiveSessions() != 0 {
		t.Errorf("ActiveSessions after logout = %d, want 0", mgr.ActiveSessions())
	}

	// Durable state survives the dropped session.
	_, body := doJSON(t, http.MethodGet, ts.URL+"/library/videos", "", "alice")
	if videos, _ := body["videos"].([]any); len(videos) != 1 {
		t.Errorf("videos after relogin = %d, want 1", len(videos))
	}
}
