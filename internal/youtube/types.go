package youtube

// Wire types mirroring the video API's nested snippet/contentDetails/status
// payloads. This package is the sole owner of the schema coupling; everything
// past it works with the normalized types at the bottom of this file.

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
			Domain string `json:"domain"`
		} `json:"errors"`
	} `json:"error"`
}

type thumbnails struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
}

type thumbnail struct {
	URL string `json:"url"`
}

func (t *thumbnails) best() string {
	if t == nil {
		return ""
	}
	switch {
	case t.Medium != nil && t.Medium.URL != "":
		return t.Medium.URL
	case t.High != nil && t.High.URL != "":
		return t.High.URL
	case t.Default != nil:
		return t.Default.URL
	}
	return ""
}

type playlistListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Description  string `json:"description"`
		} `json:"snippet"`
		ContentDetails struct {
			ItemCount int `json:"itemCount"`
		} `json:"contentDetails"`
		Status struct {
			PrivacyStatus string `json:"privacyStatus"`
		} `json:"status"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title        string      `json:"title"`
			Description  string      `json:"description"`
			PublishedAt  string      `json:"publishedAt"`
			Position     int         `json:"position"`
			Thumbnails   *thumbnails `json:"thumbnails"`
			ChannelTitle string      `json:"channelTitle"`
			ResourceID   struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
		Status struct {
			PrivacyStatus string `json:"privacyStatus"`
		} `json:"status"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// PlaylistMeta is the normalized playlist header.
type PlaylistMeta struct {
	ID            string
	Title         string
	Channel       string
	Description   string
	ItemCount     int
	PrivacyStatus string
}

// Item is one normalized playlist entry in server order.
type Item struct {
	VideoID       string
	Title         string
	Description   string
	PublishedAt   string
	ThumbnailURL  string
	ChannelTitle  string
	PrivacyStatus string
}

// ItemsPage is a single page of playlist items.
type ItemsPage struct {
	Items         []Item
	NextPageToken string
}

// Detail carries per-video fields only the videos endpoint provides.
type Detail struct {
	Title           string
	DurationSeconds int
}
