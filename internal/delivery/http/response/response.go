// Package response defines the wire shapes of the HTTP API. Error bodies are
// a stable client contract: {msg, code} with nothing else.
package response

import (
	"github.com/labstack/echo/v4"

	domainerrors "passport/internal/domain/errors"
)

// ErrorBody is the uniform error payload. Clients key on the numeric code;
// msg is the human-readable counterpart.
type ErrorBody struct {
	Msg  string `json:"msg"`
	Code int    `json:"code"`
}

// AppError renders an application error with its own HTTP status.
func AppError(c echo.Context, appErr domainerrors.AppError) error {
	return c.JSON(appErr.HTTPCode(), ErrorBody{
		Msg:  appErr.Msg(),
		Code: appErr.Code(),
	})
}

// Error renders an arbitrary status/msg/code triple.
func Error(c echo.Context, statusCode int, msg string, code int) error {
	return c.JSON(statusCode, ErrorBody{
		Msg:  msg,
		Code: code,
	})
}
