package common

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
)

// SetSSEHeaders sets headers needed for SSE that datastar.NewSSE() does NOT set.
// datastar already sets Content-Type, Cache-Control, and Connection.
// This only adds X-Accel-Buffering for nginx/reverse proxy compatibility.
func SetSSEHeaders(c echo.Context) {
	c.Response().Header().Set("X-Accel-Buffering", "no")
}

// PatchJSONSignals marshals v and sends it as a datastar signal patch.
func PatchJSONSignals(sse *datastar.ServerSentEventGenerator, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return sse.PatchSignals(b)
}
