package insight_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/cmd/web/handlers/common"
	"thirdcoast.systems/trendscout/internal/insight"
	"thirdcoast.systems/trendscout/pkg/utils/markdown"
)

type scriptRequest struct {
	Keyword            insight.Recommendation `json:"keyword"`
	OriginalVideoTitle string                 `json:"originalVideoTitle"`
}

type scriptResponse struct {
	Outline insight.ScriptOutline `json:"outline"`
}

// HandleScript serves POST /api/script.
func HandleScript(svc Insights) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req scriptRequest
		if err := common.BindJSON(c, &req); err != nil {
			return err
		}

		outline, err := svc.Script(c.Request().Context(), req.Keyword, req.OriginalVideoTitle)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, scriptResponse{Outline: outline})
	}
}

type renderRequest struct {
	Outline *insight.ScriptOutline `json:"outline" validate:"required"`
}

// HandleScriptRender serves POST /api/script/render: the outline as
// sanitised HTML.
func HandleScriptRender() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req renderRequest
		if err := common.BindJSON(c, &req); err != nil {
			return err
		}
		return c.HTML(http.StatusOK, string(markdown.Render(req.Outline.Markdown())))
	}
}
