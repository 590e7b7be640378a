package trend_api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/internal/trends"
)

type Reporter interface {
	Trends(ctx context.Context) (trends.Report, error)
}

type trendsResponse struct {
	Trends    trends.Report `json:"trends"`
	Timestamp string        `json:"timestamp"`
}

// HandleTrends serves GET /api/trends.
func HandleTrends(svc Reporter) echo.HandlerFunc {
	return func(c echo.Context) error {
		report, err := svc.Trends(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, trendsResponse{
			Trends:    report,
			Timestamp: report.GeneratedAt.UTC().Format(time.RFC3339Nano),
		})
	}
}
