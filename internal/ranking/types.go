// Package ranking joins raw search hits with video and channel statistics
// into ranked video records.
package ranking

import "time"

// ContentType selects short-form, long-form or all videos.
type ContentType string

const (
	ContentAll    ContentType = "all"
	ContentShorts ContentType = "shorts"
	ContentLong   ContentType = "long"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentAll, ContentShorts, ContentLong:
		return true
	default:
		return false
	}
}

// Filter narrows assembled records. Bounds are inclusive percentages.
type Filter struct {
	ContentType   ContentType `json:"contentType"`
	MinViralRatio float64     `json:"minViralRatio"`
	MaxViralRatio float64     `json:"maxViralRatio"`
}

// DefaultFilter mirrors the search form defaults.
func DefaultFilter() Filter {
	return Filter{
		ContentType:   ContentAll,
		MinViralRatio: 0,
		MaxViralRatio: 100,
	}
}

// SearchHit is one video stub from the search provider.
type SearchHit struct {
	VideoID      string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  string
	ThumbnailURL string
}

// VideoStats holds the per-video statistics needed for ranking.
type VideoStats struct {
	Duration  string
	ViewCount uint64
}

// ChannelStats holds the per-channel statistics needed for ranking.
type ChannelStats struct {
	SubscriberCount uint64
	Hidden          bool
}

// VideoRecord is a ranked search result.
type VideoRecord struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	ThumbnailURL      string  `json:"thumbnailUrl"`
	ChannelID         string  `json:"channelId"`
	ChannelTitle      string  `json:"channelTitle"`
	PublishedAt       string  `json:"publishedAt"`
	ViewCount         uint64  `json:"viewCount"`
	SubscriberCount   uint64  `json:"subscriberCount"`
	SubscribersHidden bool    `json:"subscribersHidden"`
	ViralRatio        float64 `json:"viralRatio"`
	Duration          string  `json:"duration"`
	DurationSeconds   int     `json:"durationSeconds"`
	IsShorts          bool    `json:"isShorts"`
}

// PublishedTime parses PublishedAt. The zero time is returned when it is
// missing or malformed.
func (v VideoRecord) PublishedTime() time.Time {
	t, err := time.Parse(time.RFC3339, v.PublishedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
