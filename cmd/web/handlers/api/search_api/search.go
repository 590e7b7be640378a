package search_api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/cmd/web/handlers/common"
	"thirdcoast.systems/trendscout/internal/ranking"
)

type Searcher interface {
	Search(ctx context.Context, query string, f ranking.Filter) ([]ranking.VideoRecord, error)
}

type searchResponse struct {
	Videos []ranking.VideoRecord `json:"videos"`
}

// HandleSearch serves GET /api/search?q=&contentType=&minViralRatio=&maxViralRatio=
func HandleSearch(svc Searcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		f := ranking.DefaultFilter()
		if ct := c.QueryParam("contentType"); ct != "" {
			f.ContentType = ranking.ContentType(ct)
		}

		var err error
		if f.MinViralRatio, err = common.QueryFloat(c, "minViralRatio", f.MinViralRatio); err != nil {
			return err
		}
		if f.MaxViralRatio, err = common.QueryFloat(c, "maxViralRatio", f.MaxViralRatio); err != nil {
			return err
		}

		videos, err := svc.Search(c.Request().Context(), c.QueryParam("q"), f)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, searchResponse{Videos: videos})
	}
}
