package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"thirdcoast.systems/trendscout/internal/apperror"
	"thirdcoast.systems/trendscout/internal/insight"
	"thirdcoast.systems/trendscout/internal/metrics"
	"thirdcoast.systems/trendscout/internal/youtube"
)

// CommentSource collects comments for a video.
type CommentSource interface {
	CollectComments(ctx context.Context, videoRef string, max int) (youtube.CommentBatch, error)
}

// Insights runs the model-backed stages.
type Insights interface {
	Analyze(ctx context.Context, comments []youtube.Comment, videoTitle string) (insight.Analysis, error)
	Recommend(ctx context.Context, analysis *insight.Analysis, videoTitle string) ([]insight.Recommendation, error)
	Script(ctx context.Context, rec insight.Recommendation, originalTitle string) (insight.ScriptOutline, error)
}

// Deps are the collaborators shared by every sequencer.
type Deps struct {
	Comments     CommentSource
	Insights     Insights
	CommentLimit int
}

// Sequencer is the state machine for one visitor. Methods are safe for
// concurrent use; provider calls run outside the lock.
type Sequencer struct {
	deps   Deps
	notify func(Snapshot)
	now    func() time.Time

	mu     sync.Mutex
	snap   Snapshot
	runCtx context.Context
	cancel context.CancelFunc
}

func NewSequencer(deps Deps, notify func(Snapshot)) *Sequencer {
	s := &Sequencer{
		deps:   deps,
		notify: notify,
		now:    time.Now,
	}
	s.snap = Snapshot{Stage: StageIdle, UpdatedAt: s.now()}
	return s
}

// Snapshot returns the current state.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Start abandons any current run and runs comments, analysis and
// recommendations for ref, stopping at the first failure.
func (s *Sequencer) Start(ctx context.Context, ref VideoRef) (Snapshot, error) {
	ref.ID = strings.TrimSpace(ref.ID)
	if ref.ID == "" {
		return s.Snapshot(), apperror.Validation("a video id is required")
	}

	s.mu.Lock()
	s.abandonLocked()
	runCtx, cancel := context.WithCancel(context.Background())
	s.runCtx, s.cancel = runCtx, cancel
	runID := uuid.NewString()
	s.snap = Snapshot{
		RunID: runID,
		Stage: StageIdle,
		Video: &ref,
	}
	s.publishLocked()
	s.mu.Unlock()

	slog.InfoContext(ctx, "pipeline started", "video_id", ref.ID, "run_id", runID)

	for _, step := range []func(context.Context, string) (Snapshot, error){
		s.collectComments,
		s.analyze,
		s.recommend,
	} {
		snap, err := step(ctx, runID)
		if err != nil {
			return snap, err
		}
	}
	return s.Snapshot(), nil
}

// CollectComments runs stage 1 for the current video. Zero comments is a
// failure of the stage.
func (s *Sequencer) CollectComments(ctx context.Context) (Snapshot, error) {
	return s.collectComments(ctx, "")
}

func (s *Sequencer) collectComments(ctx context.Context, runID string) (Snapshot, error) {
	return s.step(ctx, runID, StageFetchingComments,
		func(st *Snapshot) error {
			if st.Video == nil {
				return fmt.Errorf("%w: no video selected", ErrStageUnavailable)
			}
			return nil
		},
		func(ctx context.Context, in Snapshot) (func(*Snapshot), error) {
			batch, err := s.deps.Comments.CollectComments(ctx, in.Video.ID, s.deps.CommentLimit)
			if err != nil {
				return nil, err
			}
			if len(batch.Comments) == 0 {
				if batch.Disabled {
					return nil, apperror.Validation("comments are disabled for this video")
				}
				return nil, apperror.Validation("no comments were found for this video")
			}
			return func(st *Snapshot) {
				st.Comments = batch.Comments
				st.CommentsDisabled = batch.Disabled
				st.Stage = StageIdle
			}, nil
		},
	)
}

// Analyze runs stage 2 on the collected comments.
func (s *Sequencer) Analyze(ctx context.Context) (Snapshot, error) {
	return s.analyze(ctx, "")
}

func (s *Sequencer) analyze(ctx context.Context, runID string) (Snapshot, error) {
	return s.step(ctx, runID, StageAnalyzing,
		func(st *Snapshot) error {
			if len(st.Comments) == 0 {
				return fmt.Errorf("%w: comments have not been collected", ErrStageUnavailable)
			}
			return nil
		},
		func(ctx context.Context, in Snapshot) (func(*Snapshot), error) {
			analysis, err := s.deps.Insights.Analyze(ctx, in.Comments, in.Video.Title)
			if err != nil {
				return nil, err
			}
			return func(st *Snapshot) {
				st.Analysis = &analysis
				st.Stage = StageIdle
			}, nil
		},
	)
}

// Recommend runs stage 3 on the analysis.
func (s *Sequencer) Recommend(ctx context.Context) (Snapshot, error) {
	return s.recommend(ctx, "")
}

func (s *Sequencer) recommend(ctx context.Context, runID string) (Snapshot, error) {
	return s.step(ctx, runID, StageRecommending,
		func(st *Snapshot) error {
			if st.Analysis == nil {
				return fmt.Errorf("%w: comments have not been analyzed", ErrStageUnavailable)
			}
			return nil
		},
		func(ctx context.Context, in Snapshot) (func(*Snapshot), error) {
			recs, err := s.deps.Insights.Recommend(ctx, in.Analysis, in.Video.Title)
			if err != nil {
				return nil, err
			}
			return func(st *Snapshot) {
				st.Recommendations = recs
				st.Stage = StageAwaitingSelection
			}, nil
		},
	)
}

// GenerateScript runs stage 4 for the recommendation at index. The sequencer
// returns to awaitingSelection so another recommendation can be picked.
func (s *Sequencer) GenerateScript(ctx context.Context, index int) (Snapshot, error) {
	return s.step(ctx, "", StageGeneratingScript,
		func(st *Snapshot) error {
			if len(st.Recommendations) == 0 {
				return fmt.Errorf("%w: no recommendations to choose from", ErrStageUnavailable)
			}
			if index < 0 || index >= len(st.Recommendations) {
				return apperror.Validation(fmt.Sprintf("recommendation index must be between 0 and %d", len(st.Recommendations)-1))
			}
			return nil
		},
		func(ctx context.Context, in Snapshot) (func(*Snapshot), error) {
			outline, err := s.deps.Insights.Script(ctx, in.Recommendations[index], in.Video.Title)
			if err != nil {
				return nil, err
			}
			return func(st *Snapshot) {
				selected := index
				st.SelectedIndex = &selected
				st.Script = &outline
				st.Stage = StageAwaitingSelection
			}, nil
		},
	)
}

// Reset abandons the current run and returns to idle. In-flight calls are
// cancelled and their results discarded.
func (s *Sequencer) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonLocked()
	s.snap = Snapshot{Stage: StageIdle}
	s.publishLocked()
	return s.snap
}

// step enters stage after check passes against the current state, runs work
// outside the lock and applies its result if the run is still current. A
// non-empty expectRun pins the step to that run.
func (s *Sequencer) step(
	ctx context.Context,
	expectRun string,
	stage Stage,
	check func(*Snapshot) error,
	work func(context.Context, Snapshot) (func(*Snapshot), error),
) (Snapshot, error) {
	s.mu.Lock()
	if expectRun != "" && s.snap.RunID != expectRun {
		snap := s.snap
		s.mu.Unlock()
		return snap, ErrAbandoned
	}
	if s.snap.Stage.Busy() {
		snap := s.snap
		s.mu.Unlock()
		return snap, fmt.Errorf("%w: %s is in progress", ErrStageUnavailable, snap.Stage)
	}
	if err := check(&s.snap); err != nil {
		snap := s.snap
		s.mu.Unlock()
		return snap, err
	}

	runID := s.snap.RunID
	runCtx := s.runCtx
	s.clearFromLocked(stage)
	s.snap.Stage = stage
	s.snap.FailedStage = ""
	s.snap.Error = nil
	in := s.snap
	s.publishLocked()
	s.mu.Unlock()

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if runCtx != nil {
		stop := context.AfterFunc(runCtx, cancel)
		defer stop()
	}

	apply, err := work(callCtx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.RunID != runID || s.snap.Stage != stage {
		slog.DebugContext(ctx, "discarding result of abandoned run", "stage", stage, "run_id", runID)
		return s.snap, ErrAbandoned
	}
	if err != nil {
		slog.WarnContext(ctx, "pipeline stage failed", "stage", stage, "run_id", runID, "error", err)
		s.snap.Stage = StageFailed
		s.snap.FailedStage = stage
		s.snap.Error = failureOf(err)
		s.publishLocked()
		return s.snap, err
	}
	apply(&s.snap)
	s.publishLocked()
	return s.snap, nil
}

// clearFromLocked drops the outputs of stage and every later stage so that a
// rerun never shows stale downstream results.
func (s *Sequencer) clearFromLocked(stage Stage) {
	switch stage {
	case StageFetchingComments:
		s.snap.Comments = nil
		s.snap.CommentsDisabled = false
		fallthrough
	case StageAnalyzing:
		s.snap.Analysis = nil
		fallthrough
	case StageRecommending:
		s.snap.Recommendations = nil
		fallthrough
	case StageGeneratingScript:
		s.snap.SelectedIndex = nil
		s.snap.Script = nil
	}
}

func (s *Sequencer) abandonLocked() {
	if s.cancel != nil {
		s.cancel()
	}
	s.runCtx, s.cancel = nil, nil
}

func (s *Sequencer) publishLocked() {
	s.snap.UpdatedAt = s.now()
	metrics.PipelineTransitions.WithLabelValues(string(s.snap.Stage)).Inc()
	if s.notify != nil {
		s.notify(s.snap)
	}
}

func failureOf(err error) *Failure {
	ae := apperror.Ensure(err, "the pipeline stage failed")
	if ae.Kind == apperror.KindInternal {
		return &Failure{Message: ae.Message}
	}
	return &Failure{Message: ae.Message, Details: ae.Detail}
}
