package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"thirdcoast.systems/trendscout/internal/apperror"
	"thirdcoast.systems/trendscout/internal/insight"
	"thirdcoast.systems/trendscout/internal/youtube"
)

type fakeComments struct {
	batch youtube.CommentBatch
	err   error
	block chan struct{}
	calls int
	mu    sync.Mutex
}

func (f *fakeComments) CollectComments(ctx context.Context, _ string, _ int) (youtube.CommentBatch, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return youtube.CommentBatch{}, ctx.Err()
		}
	}
	return f.batch, f.err
}

type fakeInsights struct {
	analyzeErr   error
	recommendErr error
	scriptErr    error
	scripted     []string
}

func (f *fakeInsights) Analyze(_ context.Context, comments []youtube.Comment, _ string) (insight.Analysis, error) {
	if f.analyzeErr != nil {
		return insight.Analysis{}, f.analyzeErr
	}
	return insight.Analysis{TotalComments: len(comments), Interests: []string{"x"}}, nil
}

func (f *fakeInsights) Recommend(_ context.Context, _ *insight.Analysis, _ string) ([]insight.Recommendation, error) {
	if f.recommendErr != nil {
		return nil, f.recommendErr
	}
	return []insight.Recommendation{{Keyword: "a"}, {Keyword: "b"}}, nil
}

func (f *fakeInsights) Script(_ context.Context, rec insight.Recommendation, _ string) (insight.ScriptOutline, error) {
	if f.scriptErr != nil {
		return insight.ScriptOutline{}, f.scriptErr
	}
	f.scripted = append(f.scripted, rec.Keyword)
	return insight.ScriptOutline{Title: "about " + rec.Keyword}, nil
}

func someComments() youtube.CommentBatch {
	return youtube.CommentBatch{Comments: []youtube.Comment{{ID: "1", Text: "great"}, {ID: "2", Text: "more please"}}}
}

func TestSequencer_StartRunsToAwaitingSelection(t *testing.T) {
	var stages []Stage
	seq := NewSequencer(Deps{Comments: &fakeComments{batch: someComments()}, Insights: &fakeInsights{}}, func(s Snapshot) {
		stages = append(stages, s.Stage)
	})

	snap, err := seq.Start(context.Background(), VideoRef{ID: "vid", Title: "Title"})
	require.NoError(t, err)
	require.Equal(t, StageAwaitingSelection, snap.Stage)
	require.NotEmpty(t, snap.RunID)
	require.Len(t, snap.Comments, 2)
	require.Equal(t, 2, snap.Analysis.TotalComments)
	require.Len(t, snap.Recommendations, 2)
	require.Equal(t, []Stage{
		StageIdle,
		StageFetchingComments, StageIdle,
		StageAnalyzing, StageIdle,
		StageRecommending, StageAwaitingSelection,
	}, stages)
}

func TestSequencer_GenerateScript(t *testing.T) {
	ins := &fakeInsights{}
	seq := NewSequencer(Deps{Comments: &fakeComments{batch: someComments()}, Insights: ins}, nil)

	_, err := seq.GenerateScript(context.Background(), 0)
	require.ErrorIs(t, err, ErrStageUnavailable)

	_, err = seq.Start(context.Background(), VideoRef{ID: "vid"})
	require.NoError(t, err)

	_, err = seq.GenerateScript(context.Background(), 5)
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	snap, err := seq.GenerateScript(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, StageAwaitingSelection, snap.Stage)
	require.Equal(t, 1, *snap.SelectedIndex)
	require.Equal(t, "about b", snap.Script.Title)

	// picking another recommendation replaces the outline
	snap, err = seq.GenerateScript(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, "about a", snap.Script.Title)
	require.Equal(t, []string{"b", "a"}, ins.scripted)
}

func TestSequencer_ZeroCommentsFailsStageOne(t *testing.T) {
	seq := NewSequencer(Deps{Comments: &fakeComments{batch: youtube.CommentBatch{Disabled: true}}, Insights: &fakeInsights{}}, nil)

	snap, err := seq.Start(context.Background(), VideoRef{ID: "vid"})
	require.Error(t, err)
	require.Equal(t, StageFailed, snap.Stage)
	require.Equal(t, StageFetchingComments, snap.FailedStage)
	require.Contains(t, snap.Error.Message, "disabled")
	require.Nil(t, snap.Analysis)

	_, err = seq.Analyze(context.Background())
	require.ErrorIs(t, err, ErrStageUnavailable)
}

func TestSequencer_FailureKeepsEarlierOutputs(t *testing.T) {
	ins := &fakeInsights{recommendErr: apperror.Upstream("failed to generate completion", errors.New("timeout"))}
	seq := NewSequencer(Deps{Comments: &fakeComments{batch: someComments()}, Insights: ins}, nil)

	snap, err := seq.Start(context.Background(), VideoRef{ID: "vid"})
	require.Error(t, err)
	require.Equal(t, StageFailed, snap.Stage)
	require.Equal(t, StageRecommending, snap.FailedStage)
	require.Equal(t, "failed to generate completion", snap.Error.Message)
	require.NotNil(t, snap.Analysis)
	require.Len(t, snap.Comments, 2)

	// retry the failed stage alone
	ins.recommendErr = nil
	snap, err = seq.Recommend(context.Background())
	require.NoError(t, err)
	require.Equal(t, StageAwaitingSelection, snap.Stage)
	require.Empty(t, snap.FailedStage)
	require.Nil(t, snap.Error)
}

func TestSequencer_RerunClearsDownstream(t *testing.T) {
	seq := NewSequencer(Deps{Comments: &fakeComments{batch: someComments()}, Insights: &fakeInsights{}}, nil)
	_, err := seq.Start(context.Background(), VideoRef{ID: "vid"})
	require.NoError(t, err)
	_, err = seq.GenerateScript(context.Background(), 0)
	require.NoError(t, err)

	snap, err := seq.Analyze(context.Background())
	require.NoError(t, err)
	require.Equal(t, StageIdle, snap.Stage)
	require.NotNil(t, snap.Analysis)
	require.Nil(t, snap.Recommendations)
	require.Nil(t, snap.Script)
	require.Nil(t, snap.SelectedIndex)
}

func TestSequencer_StartRequiresVideo(t *testing.T) {
	seq := NewSequencer(Deps{Comments: &fakeComments{}, Insights: &fakeInsights{}}, nil)
	_, err := seq.Start(context.Background(), VideoRef{ID: "  "})
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = seq.CollectComments(context.Background())
	require.ErrorIs(t, err, ErrStageUnavailable)
}

func TestSequencer_ResetAbandonsInFlightRun(t *testing.T) {
	comments := &fakeComments{batch: someComments(), block: make(chan struct{})}
	seq := NewSequencer(Deps{Comments: comments, Insights: &fakeInsights{}}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := seq.Start(context.Background(), VideoRef{ID: "vid"})
		done <- err
	}()

	require.Eventually(t, func() bool {
		return seq.Snapshot().Stage == StageFetchingComments
	}, time.Second, 5*time.Millisecond)

	// a second stage cannot start while one is running
	_, err := seq.Analyze(context.Background())
	require.ErrorIs(t, err, ErrStageUnavailable)

	snap := seq.Reset()
	require.Equal(t, StageIdle, snap.Stage)
	require.Nil(t, snap.Video)

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrAbandoned)
	case <-time.After(time.Second):
		t.Fatal("in-flight run was not cancelled")
	}

	after := seq.Snapshot()
	require.Equal(t, StageIdle, after.Stage)
	require.Nil(t, after.Comments)
}

func TestSequencer_NewStartReplacesRun(t *testing.T) {
	comments := &fakeComments{batch: someComments(), block: make(chan struct{})}
	seq := NewSequencer(Deps{Comments: comments, Insights: &fakeInsights{}}, nil)

	first := make(chan error, 1)
	go func() {
		_, err := seq.Start(context.Background(), VideoRef{ID: "first"})
		first <- err
	}()
	require.Eventually(t, func() bool {
		return seq.Snapshot().Stage == StageFetchingComments
	}, time.Second, 5*time.Millisecond)
	firstRun := seq.Snapshot().RunID

	type result struct {
		snap Snapshot
		err  error
	}
	second := make(chan result, 1)
	go func() {
		snap, err := seq.Start(context.Background(), VideoRef{ID: "second"})
		second <- result{snap, err}
	}()

	select {
	case err := <-first:
		require.ErrorIs(t, err, ErrAbandoned)
	case <-time.After(time.Second):
		t.Fatal("first run was not abandoned")
	}

	close(comments.block)
	res := <-second
	require.NoError(t, res.err)
	require.NotEqual(t, firstRun, res.snap.RunID)
	require.Equal(t, "second", res.snap.Video.ID)
	require.Equal(t, StageAwaitingSelection, res.snap.Stage)
}
