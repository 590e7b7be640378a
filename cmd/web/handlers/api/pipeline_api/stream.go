package pipeline_api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"

	"thirdcoast.systems/trendscout/cmd/web/handlers/common"
	"thirdcoast.systems/trendscout/internal/pipeline"
)

const streamTimeout = 30 * time.Minute

type pipelineSignals struct {
	Pipeline pipeline.Snapshot `json:"pipeline"`
}

// HandleStream serves GET /api/pipeline/stream: the visitor's snapshots as
// datastar signal patches, starting with the current one.
func HandleStream(hub *pipeline.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		visitorID := common.VisitorID(c.Request().Context())

		updates, unsubscribe, ok := hub.Subscribe(visitorID)
		if !ok {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many open pipeline streams")
		}
		defer unsubscribe()

		common.SetSSEHeaders(c)
		sse := datastar.NewSSE(c.Response().Writer, c.Request())

		if err := common.PatchJSONSignals(sse, pipelineSignals{Pipeline: hub.Sequencer(visitorID).Snapshot()}); err != nil {
			return nil
		}

		ctx := c.Request().Context()
		// Add timeout to prevent zombie connections
		timeout := time.NewTimer(streamTimeout)
		defer timeout.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-timeout.C:
				slog.Debug("pipeline stream timeout", "visitor_id", visitorID)
				return nil
			case snap, ok := <-updates:
				if !ok {
					return nil
				}
				if err := common.PatchJSONSignals(sse, pipelineSignals{Pipeline: snap}); err != nil {
					slog.Debug("pipeline stream closed", "visitor_id", visitorID, "error", err)
					return nil
				}
			}
		}
	}
}
