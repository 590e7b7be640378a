package common

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/cmd/web/ctxkeys"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// QueryFloat parses an optional float query parameter.
func QueryFloat(c echo.Context, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrBadRequest(name + " must be a number")
	}
	return v, nil
}

// QueryInt parses an optional integer query parameter.
func QueryInt(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrBadRequest(name + " must be an integer")
	}
	return v, nil
}

// BindJSON decodes the request body into v and runs struct validation.
func BindJSON(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return ErrBadRequest("invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return ErrBadRequest(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must have at least " + fe.Param() + " entries"
	default:
		return fe.Field() + " is invalid"
	}
}

// VisitorID returns the visitor id placed in the request context.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkeys.VisitorID).(string)
	return id
}
