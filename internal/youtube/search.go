package youtube

import (
	"context"
	"html"

	yt "google.golang.org/api/youtube/v3"

	"thirdcoast.systems/trendscout/internal/ranking"
)

// maxIDsPerCall is the id limit of videos.list and channels.list.
const maxIDsPerCall = 50

// SearchVideos returns one page of video hits for query.
func (c *Client) SearchVideos(ctx context.Context, query string, max int64) ([]ranking.SearchHit, error) {
	var resp *yt.SearchListResponse
	err := c.call(ctx, "search", func() error {
		call := c.svc.Search.List([]string{"snippet"}).
			Q(query).
			Type("video").
			MaxResults(max).
			Context(ctx)
		if c.opts.RegionCode != "" {
			call = call.RegionCode(c.opts.RegionCode)
		}
		if c.opts.RelevanceLanguage != "" {
			call = call.RelevanceLanguage(c.opts.RelevanceLanguage)
		}
		var err error
		resp, err = call.Do()
		return err
	})
	if err != nil {
		return nil, classify(err, "failed to search videos")
	}

	hits := make([]ranking.SearchHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		s := item.Snippet
		hits = append(hits, ranking.SearchHit{
			VideoID:      item.Id.VideoId,
			Title:        html.UnescapeString(s.Title),
			Description:  html.UnescapeString(s.Description),
			ChannelID:    s.ChannelId,
			ChannelTitle: html.UnescapeString(s.ChannelTitle),
			PublishedAt:  s.PublishedAt,
			ThumbnailURL: thumbnailURL(s.Thumbnails),
		})
	}
	return hits, nil
}

// VideoStatistics fetches duration and view counts keyed by video id.
// Videos the provider does not return are absent from the map.
func (c *Client) VideoStatistics(ctx context.Context, ids []string) (map[string]ranking.VideoStats, error) {
	out := make(map[string]ranking.VideoStats, len(ids))
	for _, batch := range chunk(ids, maxIDsPerCall) {
		var resp *yt.VideoListResponse
		err := c.call(ctx, "videos", func() error {
			var err error
			resp, err = c.svc.Videos.List([]string{"contentDetails", "statistics"}).
				Id(batch...).
				Context(ctx).
				Do()
			return err
		})
		if err != nil {
			return nil, classify(err, "failed to fetch video statistics")
		}
		for _, v := range resp.Items {
			if v == nil || v.Statistics == nil || v.ContentDetails == nil {
				continue
			}
			out[v.Id] = ranking.VideoStats{
				Duration:  v.ContentDetails.Duration,
				ViewCount: v.Statistics.ViewCount,
			}
		}
	}
	return out, nil
}

// ChannelStatistics fetches subscriber counts keyed by channel id.
func (c *Client) ChannelStatistics(ctx context.Context, ids []string) (map[string]ranking.ChannelStats, error) {
	out := make(map[string]ranking.ChannelStats, len(ids))
	for _, batch := range chunk(ids, maxIDsPerCall) {
		var resp *yt.ChannelListResponse
		err := c.call(ctx, "channels", func() error {
			var err error
			resp, err = c.svc.Channels.List([]string{"statistics"}).
				Id(batch...).
				Context(ctx).
				Do()
			return err
		})
		if err != nil {
			return nil, classify(err, "failed to fetch channel statistics")
		}
		for _, ch := range resp.Items {
			if ch == nil || ch.Statistics == nil {
				continue
			}
			out[ch.Id] = ranking.ChannelStats{
				SubscriberCount: ch.Statistics.SubscriberCount,
				Hidden:          ch.Statistics.HiddenSubscriberCount,
			}
		}
	}
	return out, nil
}

func thumbnailURL(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*yt.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > 0 {
		n := min(size, len(ids))
		out = append(out, ids[:n])
		ids = ids[n:]
	}
	return out
}
