package http

import "github.com/labstack/echo/v4"

// ErrorResponse is the envelope every failed request returns. Clients branch
// on the HTTP status; Errors carries field-level validation messages.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

func Err(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Error: message})
}

func FieldErr(c echo.Context, status int, message string, fields map[string]string) error {
	return c.JSON(status, ErrorResponse{Error: message, Errors: fields})
}
