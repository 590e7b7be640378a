package youtube

import (
	"context"
	"html"

	yt "google.golang.org/api/youtube/v3"

	"thirdcoast.systems/trendscout/internal/trends"
)

// MostPopular returns the region's mostPopular chart. It satisfies
// trends.FeedProvider.
func (c *Client) MostPopular(ctx context.Context, regionCode string, max int64) ([]trends.TrendingVideo, error) {
	var resp *yt.VideoListResponse
	err := c.call(ctx, "mostPopular", func() error {
		var err error
		resp, err = c.svc.Videos.List([]string{"snippet"}).
			Chart("mostPopular").
			RegionCode(regionCode).
			MaxResults(max).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, classify(err, "failed to fetch trending videos")
	}

	out := make([]trends.TrendingVideo, 0, len(resp.Items))
	for _, v := range resp.Items {
		if v == nil || v.Snippet == nil {
			continue
		}
		out = append(out, trends.TrendingVideo{
			Title:      html.UnescapeString(v.Snippet.Title),
			Tags:       v.Snippet.Tags,
			CategoryID: v.Snippet.CategoryId,
		})
	}
	return out, nil
}
