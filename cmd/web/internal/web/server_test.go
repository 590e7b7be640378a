package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"thirdcoast.systems/trendscout/cmd/web/visitor"
	"thirdcoast.systems/trendscout/internal/apperror"
	"thirdcoast.systems/trendscout/internal/insight"
	"thirdcoast.systems/trendscout/internal/pipeline"
	"thirdcoast.systems/trendscout/internal/ranking"
	"thirdcoast.systems/trendscout/internal/trends"
	"thirdcoast.systems/trendscout/internal/youtube"
)

type fakeSearch struct {
	gotQuery  string
	gotFilter ranking.Filter
	err       error
}

func (f *fakeSearch) Search(_ context.Context, query string, filter ranking.Filter) ([]ranking.VideoRecord, error) {
	f.gotQuery, f.gotFilter = query, filter
	if f.err != nil {
		return nil, f.err
	}
	return []ranking.VideoRecord{{ID: "abc", Title: "Cat video", ViralRatio: 12.5}}, nil
}

type fakeComments struct{}

func (fakeComments) CollectComments(_ context.Context, _ string, _ int) (youtube.CommentBatch, error) {
	return youtube.CommentBatch{Comments: []youtube.Comment{{ID: "c1", Text: "more please"}}}, nil
}

type fakeInsights struct{}

func (fakeInsights) Analyze(_ context.Context, comments []youtube.Comment, _ string) (insight.Analysis, error) {
	return insight.Analysis{
		Keywords:      []insight.KeywordScore{{Keyword: "cats", Count: 3}},
		TotalComments: len(comments),
	}, nil
}

func (fakeInsights) Recommend(_ context.Context, _ *insight.Analysis, _ string) ([]insight.Recommendation, error) {
	return []insight.Recommendation{{Keyword: "cats", Reason: "popular", PotentialScore: 9}}, nil
}

func (fakeInsights) Script(_ context.Context, rec insight.Recommendation, _ string) (insight.ScriptOutline, error) {
	return insight.ScriptOutline{
		Title:    "All about " + rec.Keyword,
		Sections: []insight.Section{{Title: "Intro", Description: "hello", Duration: "0:30"}},
	}, nil
}

type fakeTrends struct{}

func (fakeTrends) Trends(context.Context) (trends.Report, error) {
	return trends.Report{
		Korea:       []trends.TrendEntry{{Keyword: "게임", Count: 4}},
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func newTestServer(t *testing.T, s *fakeSearch) *Webserver {
	t.Helper()
	hub := pipeline.NewHub(pipeline.Deps{
		Comments:     fakeComments{},
		Insights:     fakeInsights{},
		CommentLimit: 100,
	}, time.Hour)
	ws, err := NewWebserver(context.Background(), Services{
		Search:       s,
		Comments:     fakeComments{},
		Insights:     fakeInsights{},
		Trends:       fakeTrends{},
		Pipelines:    hub,
		Visitors:     visitor.NewManager(strings.Repeat("k", 32)),
		CommentLimit: 100,
	})
	require.NoError(t, err)
	return ws
}

func serve(ws *Webserver, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ws.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	ws := newTestServer(t, &fakeSearch{})
	rec := serve(ws, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	ws := newTestServer(t, &fakeSearch{})
	rec := serve(ws, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "trendscout_")
}

func TestSearchRoute(t *testing.T) {
	s := &fakeSearch{}
	ws := newTestServer(t, s)

	rec := serve(ws, http.MethodGet, "/api/search?q=cats&contentType=shorts&minViralRatio=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "cats", s.gotQuery)
	require.Equal(t, ranking.ContentShorts, s.gotFilter.ContentType)
	require.Equal(t, 2.0, s.gotFilter.MinViralRatio)
	require.Equal(t, 100.0, s.gotFilter.MaxViralRatio)

	var body struct {
		Videos []ranking.VideoRecord `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Videos, 1)
	require.Equal(t, "abc", body.Videos[0].ID)
}

func TestSearchRouteErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		ws := newTestServer(t, &fakeSearch{err: apperror.Validation("search query is required")})
		rec := serve(ws, http.MethodGet, "/api/search", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"search query is required"}`, rec.Body.String())
	})

	t.Run("configuration carries details", func(t *testing.T) {
		err := apperror.Configuration("YouTube API key is not valid", "Check YOUTUBE_API_KEY in your environment.", nil)
		ws := newTestServer(t, &fakeSearch{err: err})
		rec := serve(ws, http.MethodGet, "/api/search?q=cats", "")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "YOUTUBE_API_KEY")
	})

	t.Run("bad number", func(t *testing.T) {
		ws := newTestServer(t, &fakeSearch{})
		rec := serve(ws, http.MethodGet, "/api/search?q=cats&minViralRatio=lots", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTrendsRoute(t *testing.T) {
	ws := newTestServer(t, &fakeSearch{})
	rec := serve(ws, http.MethodGet, "/api/trends", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"timestamp":"2026-03-01T12:00:00Z"`)
	require.Contains(t, rec.Body.String(), "게임")
}

func TestScriptRenderRoute(t *testing.T) {
	ws := newTestServer(t, &fakeSearch{})
	rec := serve(ws, http.MethodPost, "/api/script/render",
		`{"outline":{"title":"Cats","hook":"Why cats?","sections":[{"title":"Intro","description":"hello","duration":"0:30"}],"conclusion":"bye","callToAction":"subscribe"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<h1")
	require.Contains(t, rec.Body.String(), "Why cats?")
}

func TestPipelineRoutesFollowVisitorCookie(t *testing.T) {
	ws := newTestServer(t, &fakeSearch{})

	rec := serve(ws, http.MethodGet, "/api/pipeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, visitor.SessionName, cookies[0].Name)

	rec = serve(ws, http.MethodPost, "/api/pipeline/start", `{"videoId":"dQw4w9WgXcQ","videoTitle":"Cats"}`, cookies...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var snap pipeline.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, pipeline.StageAwaitingSelection, snap.Stage)
	require.Len(t, snap.Recommendations, 1)

	rec = serve(ws, http.MethodPost, "/api/pipeline/script", `{"index":0}`, cookies...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.NotNil(t, snap.Script)
	require.Equal(t, "All about cats", snap.Script.Title)

	// A different visitor sees a fresh pipeline.
	rec = serve(ws, http.MethodGet, "/api/pipeline", "")
	var fresh pipeline.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fresh))
	require.Equal(t, pipeline.StageIdle, fresh.Stage)
	require.Nil(t, fresh.Video)
	require.Empty(t, fresh.Recommendations)
}

func TestPipelineScriptRejectsBadIndex(t *testing.T) {
	ws := newTestServer(t, &fakeSearch{})
	rec := serve(ws, http.MethodGet, "/api/pipeline", "")
	cookies := rec.Result().Cookies()

	rec = serve(ws, http.MethodPost, "/api/pipeline/start", `{"videoId":"dQw4w9WgXcQ"}`, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(ws, http.MethodPost, "/api/pipeline/script", `{"index":7}`, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"pipeline"`)

	rec = serve(ws, http.MethodPost, "/api/pipeline/script", `{}`, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
