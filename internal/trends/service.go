package trends

import (
	"context"
	"log/slog"
	"time"

	"thirdcoast.systems/trendscout/internal/apperror"
	"thirdcoast.systems/trendscout/internal/keywords"
)

// FeedBatchSize is the number of popular videos requested per region.
const FeedBatchSize = 50

// FeedProvider returns a region's currently popular videos.
type FeedProvider interface {
	MostPopular(ctx context.Context, regionCode string, max int64) ([]TrendingVideo, error)
}

// Service builds trend reports from a FeedProvider.
type Service struct {
	feed      FeedProvider
	extractor *keywords.Extractor
	regions   []Region
	now       func() time.Time
}

func NewService(feed FeedProvider, extractor *keywords.Extractor) *Service {
	if extractor == nil {
		extractor = keywords.NewExtractor(nil)
	}
	return &Service{
		feed:      feed,
		extractor: extractor,
		regions:   Regions,
		now:       time.Now,
	}
}

// Trends fetches every region in turn and partitions the ranked keywords.
// A region that fails is logged and skipped; the call only fails when no
// region could be fetched, and then reports the first region's error.
func (s *Service) Trends(ctx context.Context) (Report, error) {
	var (
		all     []TrendEntry
		failed   []Region
		firstErr error
	)

	for _, region := range s.regions {
		videos, err := s.feed.MostPopular(ctx, string(region), FeedBatchSize)
		if err != nil {
			if ctx.Err() != nil {
				return Report{}, ctx.Err()
			}
			slog.WarnContext(ctx, "failed to fetch trending feed", "region", region, "region_name", region.Name(), "error", err)
			failed = append(failed, region)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		entries := Aggregate(region, videos, s.extractor)
		slog.DebugContext(ctx, "aggregated trending feed", "region", region, "videos", len(videos), "keywords", len(entries))
		all = append(all, entries...)
	}

	if len(failed) == len(s.regions) {
		if ae, ok := apperror.As(firstErr); ok && ae.Kind == apperror.KindConfiguration {
			return Report{}, ae
		}
		return Report{}, apperror.Upstream("failed to fetch trending data", firstErr)
	}

	report := Partition(all)
	report.GeneratedAt = s.now().UTC()
	report.FailedRegions = failed
	return report, nil
}
