package insight_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/cmd/web/handlers/common"
	"thirdcoast.systems/trendscout/internal/insight"
	"thirdcoast.systems/trendscout/internal/youtube"
)

type analyzeRequest struct {
	Comments   []youtube.Comment `json:"comments"`
	VideoTitle string            `json:"videoTitle"`
}

type analyzeResponse struct {
	Analysis insight.Analysis `json:"analysis"`
}

// HandleAnalyze serves POST /api/analyze.
func HandleAnalyze(svc Insights) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req analyzeRequest
		if err := common.BindJSON(c, &req); err != nil {
			return err
		}

		analysis, err := svc.Analyze(c.Request().Context(), req.Comments, req.VideoTitle)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, analyzeResponse{Analysis: analysis})
	}
}
