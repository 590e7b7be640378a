// Package search runs a viral-video search: one page of provider hits joined
// with video and channel statistics, filtered and ranked.
package search

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"thirdcoast.systems/trendscout/internal/apperror"
	"thirdcoast.systems/trendscout/internal/ranking"
)

// DefaultBatchSize is the number of hits requested per search.
const DefaultBatchSize = 25

// Provider is the subset of the YouTube client a search needs.
type Provider interface {
	SearchVideos(ctx context.Context, query string, max int64) ([]ranking.SearchHit, error)
	VideoStatistics(ctx context.Context, ids []string) (map[string]ranking.VideoStats, error)
	ChannelStatistics(ctx context.Context, ids []string) (map[string]ranking.ChannelStats, error)
}

type Service struct {
	provider  Provider
	batchSize int64
}

func NewService(provider Provider, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{provider: provider, batchSize: int64(batchSize)}
}

// Validate checks query and filter before any provider call.
func Validate(query string, f ranking.Filter) error {
	if strings.TrimSpace(query) == "" {
		return apperror.Validation("a search query is required")
	}
	if !f.ContentType.Valid() {
		return apperror.Validation("contentType must be one of all, shorts, long")
	}
	if math.IsNaN(f.MinViralRatio) || math.IsNaN(f.MaxViralRatio) {
		return apperror.Validation("viral ratio bounds must be numbers")
	}
	if f.MinViralRatio < 0 || f.MaxViralRatio < 0 {
		return apperror.Validation("viral ratio bounds must not be negative")
	}
	if f.MinViralRatio > f.MaxViralRatio {
		return apperror.Validation("minViralRatio must not exceed maxViralRatio")
	}
	return nil
}

// Search returns the filtered records ordered by viral ratio, highest first.
func (s *Service) Search(ctx context.Context, query string, f ranking.Filter) ([]ranking.VideoRecord, error) {
	if err := Validate(query, f); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)

	hits, err := s.provider.SearchVideos(ctx, query, s.batchSize)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []ranking.VideoRecord{}, nil
	}

	videoIDs := make([]string, 0, len(hits))
	channelIDs := make([]string, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		videoIDs = append(videoIDs, h.VideoID)
		if _, ok := seen[h.ChannelID]; !ok && h.ChannelID != "" {
			seen[h.ChannelID] = struct{}{}
			channelIDs = append(channelIDs, h.ChannelID)
		}
	}

	videos, err := s.provider.VideoStatistics(ctx, videoIDs)
	if err != nil {
		return nil, err
	}
	channels, err := s.provider.ChannelStatistics(ctx, channelIDs)
	if err != nil {
		return nil, err
	}

	records := ranking.Assemble(hits, videos, channels, f)
	slog.DebugContext(ctx, "search assembled",
		"query", query,
		"hits", len(hits),
		"records", len(records),
	)
	return records, nil
}
