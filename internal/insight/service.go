package insight

import (
	"context"
	"log/slog"
	"strings"

	"thirdcoast.systems/trendscout/internal/apperror"
	"thirdcoast.systems/trendscout/internal/llm"
	"thirdcoast.systems/trendscout/internal/youtube"
	"thirdcoast.systems/trendscout/pkg/utils/language"
)

const (
	// AnalyzeCommentLimit is the number of comments included in an analysis
	// prompt.
	AnalyzeCommentLimit   = 100
	RecommendationCount   = 5
	recommendKeywordLimit = 10
	commentSeparator      = "\n---\n"

	analyzeTemperature   = 0.7
	recommendTemperature = 0.8
	scriptTemperature    = 0.8
)

// Service runs the analysis, recommendation and script stages.
type Service struct {
	gen  llm.Generator
	lang language.Tag
}

func NewService(gen llm.Generator, lang language.Tag) *Service {
	return &Service{gen: gen, lang: lang}
}

// Language is the language generated text is requested in.
func (s *Service) Language() language.Tag {
	return s.lang
}

// Analyze summarises audience sentiment, keywords and interests from
// comments. TotalComments is always len(comments), even though only the
// first AnalyzeCommentLimit are sent to the model.
func (s *Service) Analyze(ctx context.Context, comments []youtube.Comment, videoTitle string) (Analysis, error) {
	if len(comments) == 0 {
		return Analysis{}, apperror.Validation("there are no comments to analyze")
	}

	texts := make([]string, 0, min(len(comments), AnalyzeCommentLimit))
	for _, c := range comments[:min(len(comments), AnalyzeCommentLimit)] {
		texts = append(texts, c.Text)
	}

	var out Analysis
	err := s.complete(ctx, "analyze", llm.Prompt{
		System:      systemPrompt(analystRole),
		User:        analyzePrompt(videoTitle, strings.Join(texts, commentSeparator), s.lang.Name()),
		Temperature: analyzeTemperature,
	}, &out)
	if err != nil {
		return Analysis{}, err
	}

	if out.Keywords == nil {
		out.Keywords = []KeywordScore{}
	}
	if out.Interests == nil {
		out.Interests = []string{}
	}
	out.TotalComments = len(comments)
	return out, nil
}

// Recommend proposes content topics from an analysis.
func (s *Service) Recommend(ctx context.Context, analysis *Analysis, videoTitle string) ([]Recommendation, error) {
	if analysis == nil {
		return nil, apperror.Validation("an analysis result is required")
	}

	var out struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	err := s.complete(ctx, "recommend", llm.Prompt{
		System:      systemPrompt(strategistRole),
		User:        recommendPrompt(videoTitle, analysis, s.lang.Name()),
		Temperature: recommendTemperature,
	}, &out)
	if err != nil {
		return nil, err
	}

	recs := out.Recommendations[:0]
	for _, r := range out.Recommendations {
		if strings.TrimSpace(r.Keyword) != "" {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return nil, apperror.Malformed("the model returned no recommendations", nil)
	}
	if len(recs) != RecommendationCount {
		slog.WarnContext(ctx, "unexpected recommendation count", "want", RecommendationCount, "got", len(recs))
	}
	return recs, nil
}

// Script generates an outline for one recommendation.
func (s *Service) Script(ctx context.Context, rec Recommendation, originalTitle string) (ScriptOutline, error) {
	if strings.TrimSpace(rec.Keyword) == "" {
		return ScriptOutline{}, apperror.Validation("a recommendation keyword is required")
	}

	var out ScriptOutline
	err := s.complete(ctx, "script", llm.Prompt{
		System:      systemPrompt(writerRole),
		User:        scriptPrompt(rec, originalTitle, s.lang.Name()),
		Temperature: scriptTemperature,
	}, &out)
	if err != nil {
		return ScriptOutline{}, err
	}
	if out.Title == "" || len(out.Sections) == 0 {
		return ScriptOutline{}, apperror.Malformed("the model returned an incomplete outline", nil)
	}
	return out, nil
}

func (s *Service) complete(ctx context.Context, stage string, p llm.Prompt, v any) error {
	raw, err := s.gen.Generate(ctx, p)
	if err != nil {
		return err
	}
	if err := llm.DecodeJSON(raw, v); err != nil {
		slog.WarnContext(ctx, "could not decode completion", "stage", stage, "error", err)
		return apperror.Malformed("the model response could not be parsed", err)
	}
	return nil
}
