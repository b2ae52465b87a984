// Package youtube is the client for the external video API: playlist
// metadata, item pagination and batched video detail lookups.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/mfigueroa/lectrack/internal/apperr"
	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/logger"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// NewClient creates an API client. Outbound calls are paced with a token
// bucket so a large import cannot burst against the provider.
func NewClient(baseURL, apiKey string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(constants.DefaultOutboundRPS), 1),
		log:     log.WithComponent("youtube"),
	}
}

// GetPlaylist fetches playlist metadata. A playlist absent from the
// response maps to NotFound.
func (c *Client) GetPlaylist(ctx context.Context, id string) (*PlaylistMeta, error) {
	q := url.Values{}
	q.Set("part", "snippet,contentDetails,status")
	q.Set("id", id)

	var resp playlistListResponse
	if err := c.get(ctx, "/playlists", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "playlist not found")
	}

	item := resp.Items[0]
	return &PlaylistMeta{
		ID:            item.ID,
		Title:         item.Snippet.Title,
		Channel:       item.Snippet.ChannelTitle,
		Description:   item.Snippet.Description,
		ItemCount:     item.ContentDetails.ItemCount,
		PrivacyStatus: item.Status.PrivacyStatus,
	}, nil
}

// ListItems fetches one page of playlist items in server order.
func (c *Client) ListItems(ctx context.Context, playlistID, pageToken string) (*ItemsPage, error) {
	q := url.Values{}
	q.Set("part", "snippet,contentDetails,status")
	q.Set("playlistId", playlistID)
	q.Set("maxResults", strconv.Itoa(constants.ItemsPerPage))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var resp playlistItemsResponse
	if err := c.get(ctx, "/playlistItems", q, &resp); err != nil {
		return nil, err
	}

	page := &ItemsPage{NextPageToken: resp.NextPageToken}
	for _, it := range resp.Items {
		videoID := it.ContentDetails.VideoID
		if videoID == "" {
			videoID = it.Snippet.ResourceID.VideoID
		}
		page.Items = append(page.Items, Item{
			VideoID:       videoID,
			Title:         it.Snippet.Title,
			Description:   it.Snippet.Description,
			PublishedAt:   it.Snippet.PublishedAt,
			ThumbnailURL:  it.Snippet.Thumbnails.best(),
			ChannelTitle:  it.Snippet.ChannelTitle,
			PrivacyStatus: it.Status.PrivacyStatus,
		})
	}
	return page, nil
}

// GetDetails fetches duration and title for up to 50 video ids, keyed by id.
func (c *Client) GetDetails(ctx context.Context, ids []string) (map[string]Detail, error) {
	if len(ids) == 0 {
		return map[string]Detail{}, nil
	}
	if len(ids) > constants.DetailBatchSize {
		return nil, apperr.New(apperr.KindInvalidInput,
			fmt.Sprintf("at most %d ids per detail lookup", constants.DetailBatchSize))
	}

	q := url.Values{}
	q.Set("part", "snippet,contentDetails")
	q.Set("id", strings.Join(ids, ","))

	var resp videoListResponse
	if err := c.get(ctx, "/videos", q, &resp); err != nil {
		return nil, err
	}

	details := make(map[string]Detail, len(resp.Items))
	for _, it := range resp.Items {
		details[it.ID] = Detail{
			Title:           it.Snippet.Title,
			DurationSeconds: parseISODuration(it.ContentDetails.Duration),
		}
	}
	return details, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	q.Set("key", c.apiKey)
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindInvalidInput, "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return apperr.Wrap(apperr.KindTimeout, "request timed out", err)
		}
		return apperr.Wrap(apperr.KindUnknown, "request failed", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode != http.StatusOK {
		return c.mapStatus(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "decode response", err)
	}
	return nil
}

// mapStatus converts a non-200 response into exactly one taxonomy kind.
func (c *Client) mapStatus(resp *http.Response) error {
	var body apiErrorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	reason := ""
	if len(body.Error.Errors) > 0 {
		reason = body.Error.Errors[0].Reason
	}
	message := body.Error.Message
	if message == "" {
		message = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusForbidden && strings.Contains(strings.ToLower(reason), "quota"):
		return apperr.New(apperr.KindQuotaExceeded, message)
	case resp.StatusCode == http.StatusForbidden:
		return apperr.New(apperr.KindForbidden, message)
	case resp.StatusCode == http.StatusUnauthorized:
		return apperr.New(apperr.KindUnauthorized, message)
	case resp.StatusCode == http.StatusNotFound:
		return apperr.New(apperr.KindNotFound, message)
	case resp.StatusCode == http.StatusBadRequest:
		return apperr.New(apperr.KindInvalidInput, message)
	case resp.StatusCode == http.StatusRequestTimeout:
		return apperr.New(apperr.KindTimeout, message)
	case resp.StatusCode == http.StatusTooManyRequests:
		after, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &apperr.Error{Kind: apperr.KindRateLimited, Message: message, RetryAfter: after}
	default:
		c.log.Warn("unexpected API status", "status", resp.StatusCode, "reason", reason)
		return apperr.New(apperr.KindUnknown, message)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var isoDurationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts the API's ISO-8601-like duration token
// ("PT1H5M30S") into seconds. Unparseable tokens yield 0.
func parseISODuration(s string) int {
	m := isoDurationRegex.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	atoi := func(v string) int {
		if v == "" {
			return 0
		}
		n, _ := strconv.Atoi(v)
		return n
	}
	return atoi(m[1])*3600 + atoi(m[2])*60 + atoi(m[3])
}
