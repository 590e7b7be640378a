package insight_api

import (
	"context"

	"thirdcoast.systems/trendscout/internal/insight"
	"thirdcoast.systems/trendscout/internal/youtube"
)

// Insights is the model-backed service behind these handlers.
type Insights interface {
	Analyze(ctx context.Context, comments []youtube.Comment, videoTitle string) (insight.Analysis, error)
	Recommend(ctx context.Context, analysis *insight.Analysis, videoTitle string) ([]insight.Recommendation, error)
	Script(ctx context.Context, rec insight.Recommendation, originalTitle string) (insight.ScriptOutline, error)
}
