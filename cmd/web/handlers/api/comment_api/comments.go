package comment_api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/cmd/web/handlers/common"
	"thirdcoast.systems/trendscout/internal/youtube"
)

type Collector interface {
	CollectComments(ctx context.Context, videoRef string, max int) (youtube.CommentBatch, error)
}

type commentsResponse struct {
	Comments []youtube.Comment `json:"comments"`
	Disabled bool              `json:"disabled,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// HandleComments serves GET /api/comments?videoId=&maxResults=
// Disabled comments are a successful, empty response carrying a notice.
func HandleComments(svc Collector, defaultLimit int) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID := c.QueryParam("videoId")
		if videoID == "" {
			return common.ErrBadRequest("videoId is required")
		}
		max, err := common.QueryInt(c, "maxResults", defaultLimit)
		if err != nil {
			return err
		}

		batch, err := svc.CollectComments(c.Request().Context(), videoID, max)
		if err != nil {
			return err
		}

		resp := commentsResponse{Comments: batch.Comments, Disabled: batch.Disabled}
		if resp.Comments == nil {
			resp.Comments = []youtube.Comment{}
		}
		if batch.Disabled {
			resp.Error = "comments are disabled for this video"
		}
		return c.JSON(http.StatusOK, resp)
	}
}
