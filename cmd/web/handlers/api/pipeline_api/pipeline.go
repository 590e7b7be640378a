package pipeline_api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/cmd/web/handlers/common"
	"thirdcoast.systems/trendscout/internal/pipeline"
)

type startRequest struct {
	VideoID    string `json:"videoId" validate:"required"`
	VideoTitle string `json:"videoTitle"`
}

type scriptRequest struct {
	Index *int `json:"index" validate:"required"`
}

func sequencer(c echo.Context, hub *pipeline.Hub) *pipeline.Sequencer {
	return hub.Sequencer(common.VisitorID(c.Request().Context()))
}

// stageContext keeps a stage running when the browser navigates away; the
// sequencer's own run cancellation still applies.
func stageContext(c echo.Context) context.Context {
	return context.WithoutCancel(c.Request().Context())
}

// respond writes the snapshot on success. Failed stages also answer with
// the snapshot so earlier outputs stay visible, alongside the error body.
func respond(c echo.Context, snap pipeline.Snapshot, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, snap)
	}
	status, body := common.Describe(err)
	return c.JSON(status, struct {
		common.ErrorBody
		Pipeline pipeline.Snapshot `json:"pipeline"`
	}{body, snap})
}

// HandleGet serves GET /api/pipeline.
func HandleGet(hub *pipeline.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, sequencer(c, hub).Snapshot())
	}
}

// HandleStart serves POST /api/pipeline/start.
func HandleStart(hub *pipeline.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req startRequest
		if err := common.BindJSON(c, &req); err != nil {
			return err
		}
		snap, err := sequencer(c, hub).Start(stageContext(c), pipeline.VideoRef{ID: req.VideoID, Title: req.VideoTitle})
		return respond(c, snap, err)
	}
}

// HandleComments serves POST /api/pipeline/comments.
func HandleComments(hub *pipeline.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap, err := sequencer(c, hub).CollectComments(stageContext(c))
		return respond(c, snap, err)
	}
}

// HandleAnalyze serves POST /api/pipeline/analyze.
func HandleAnalyze(hub *pipeline.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap, err := sequencer(c, hub).Analyze(stageContext(c))
		return respond(c, snap, err)
	}
}

// HandleRecommend serves POST /api/pipeline/recommend.
func HandleRecommend(hub *pipeline.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap, err := sequencer(c, hub).Recommend(stageContext(c))
		return respond(c, snap, err)
	}
}

// HandleScript serves POST /api/pipeline/script.
func HandleScript(hub *pipeline.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req scriptRequest
		if err := common.BindJSON(c, &req); err != nil {
			return err
		}
		snap, err := sequencer(c, hub).GenerateScript(stageContext(c), *req.Index)
		return respond(c, snap, err)
	}
}

// HandleReset serves POST /api/pipeline/reset.
func HandleReset(hub *pipeline.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, sequencer(c, hub).Reset())
	}
}
