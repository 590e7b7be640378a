package insight_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/cmd/web/handlers/common"
	"thirdcoast.systems/trendscout/internal/insight"
)

type recommendRequest struct {
	Analysis   *insight.Analysis `json:"analysis"`
	VideoTitle string            `json:"videoTitle"`
}

type recommendResponse struct {
	Recommendations []insight.Recommendation `json:"recommendations"`
}

// HandleRecommend serves POST /api/recommend.
func HandleRecommend(svc Insights) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req recommendRequest
		if err := common.BindJSON(c, &req); err != nil {
			return err
		}

		recs, err := svc.Recommend(c.Request().Context(), req.Analysis, req.VideoTitle)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, recommendResponse{Recommendations: recs})
	}
}
