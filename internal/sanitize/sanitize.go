// Package sanitize validates untrusted input before it reaches the external
// API: credentials, playlist identifiers and source URLs. All functions are
// pure; malformed input yields a zero value and false, never an error.
package sanitize

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/mfigueroa/lectrack/internal/constants"
)

var (
	apiKeyRegex     = regexp.MustCompile(`^[A-Za-z0-9_-]{35,45}$`)
	idCharFilter    = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	listParamRegex  = regexp.MustCompile(`[?&]list=([A-Za-z0-9_-]+)`)
	placeholderKeys = map[string]bool{
		"YOUR_API_KEY":             true,
		"YOUR_YOUTUBE_API_KEY":     true,
		"REPLACE_ME":               true,
		"CHANGEME":                 true,
		"AIzaSyXXXXXXXXXXXXXXXXXX": true,
	}
)

// allowedHosts is the allow-list of video platform hostnames accepted as
// import sources.
var allowedHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// ValidAPIKey reports whether key looks like a real API credential:
// fixed-length alphanumeric with hyphen/underscore, and not a known
// placeholder value.
func ValidAPIKey(key string) bool {
	if placeholderKeys[key] {
		return false
	}
	return apiKeyRegex.MatchString(key)
}

// PlaylistID strips characters outside [A-Za-z0-9_-] from raw and rejects
// results outside the accepted length range, preventing injection into
// downstream API calls.
func PlaylistID(raw string) (string, bool) {
	id := idCharFilter.ReplaceAllString(raw, "")
	if len(id) < constants.MinPlaylistIDLen || len(id) > constants.MaxPlaylistIDLen {
		return "", false
	}
	return id, true
}

// SourceURL parses raw as a URL and accepts only hostnames on the video
// platform allow-list. The normalized URL string is returned on success.
func SourceURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if !allowedHosts[strings.ToLower(u.Hostname())] {
		return "", false
	}
	return u.String(), true
}

// ExtractPlaylistID pulls the list query parameter out of a playlist URL
// and sanitizes it. A bare identifier is also accepted.
func ExtractPlaylistID(rawURL string) (string, bool) {
	if m := listParamRegex.FindStringSubmatch(rawURL); m != nil {
		return PlaylistID(m[1])
	}
	// Not a URL at all: treat the input as a raw id.
	if !strings.ContainsAny(rawURL, ":/?&= \t") {
		return PlaylistID(rawURL)
	}
	return "", false
}
