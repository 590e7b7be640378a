// Package pipeline sequences the comment → analysis → recommendation →
// script stages for one visitor and publishes progress snapshots.
package pipeline

import (
	"errors"
	"time"

	"thirdcoast.systems/trendscout/internal/insight"
	"thirdcoast.systems/trendscout/internal/youtube"
)

type Stage string

const (
	StageIdle              Stage = "idle"
	StageFetchingComments  Stage = "fetchingComments"
	StageAnalyzing         Stage = "analyzing"
	StageRecommending      Stage = "recommending"
	StageAwaitingSelection Stage = "awaitingSelection"
	StageGeneratingScript  Stage = "generatingScript"
	StageFailed            Stage = "failed"
)

// Busy reports whether a provider call is in flight in this stage.
func (s Stage) Busy() bool {
	switch s {
	case StageFetchingComments, StageAnalyzing, StageRecommending, StageGeneratingScript:
		return true
	default:
		return false
	}
}

var (
	// ErrStageUnavailable is returned when a stage's input is missing or
	// another stage is still running.
	ErrStageUnavailable = errors.New("pipeline stage is not available")
	// ErrAbandoned is returned to callers whose run was reset or replaced
	// while their call was in flight. Their result is discarded.
	ErrAbandoned = errors.New("pipeline run was abandoned")
)

// VideoRef identifies the video a run works on.
type VideoRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Failure is the presentable form of the last stage error.
type Failure struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Snapshot is an immutable view of a sequencer.
type Snapshot struct {
	RunID            string                   `json:"runId"`
	Stage            Stage                    `json:"stage"`
	FailedStage      Stage                    `json:"failedStage,omitempty"`
	Error            *Failure                 `json:"error,omitempty"`
	Video            *VideoRef                `json:"video,omitempty"`
	Comments         []youtube.Comment        `json:"comments,omitempty"`
	CommentsDisabled bool                     `json:"commentsDisabled"`
	Analysis         *insight.Analysis        `json:"analysis,omitempty"`
	Recommendations  []insight.Recommendation `json:"recommendations,omitempty"`
	SelectedIndex    *int                     `json:"selectedIndex,omitempty"`
	Script           *insight.ScriptOutline   `json:"script,omitempty"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}
