package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/damacus/iron-gallery/internal/gallery"
	"github.com/damacus/iron-gallery/internal/services"
	"github.com/labstack/echo/v4"
)

var (
	errEmptyBody   = errors.New("body can't be empty")
	errInvalidBody = errors.New("body must be a JSON object")
)

// ClientError logs a rejected request and returns a 400 for echo to render.
func ClientError(c echo.Context, logger *slog.Logger, message string) error {
	logger.WarnContext(c.Request().Context(), "rejected request", "path", c.Path(), "reason", message)
	return echo.NewHTTPError(http.StatusBadRequest, message)
}

// ErrorResponse maps a gallery or backend error to an HTTP error. Backend
// messages are passed through unchanged.
func ErrorResponse(c echo.Context, logger *slog.Logger, err error) error {
	if errors.Is(err, gallery.ErrInvalidInput) {
		return ClientError(c, logger, err.Error())
	}

	message := err.Error()
	var storeErr *services.Error
	if errors.As(err, &storeErr) {
		message = storeErr.Message()
	}

	attrs := []any{"path", c.Path(), "error", err}
	if storeErr != nil && storeErr.Code() != "" {
		attrs = append(attrs, "code", storeErr.Code())
	}
	var moveErr *gallery.MoveError
	if errors.As(err, &moveErr) {
		attrs = append(attrs, "phase", moveErr.Phase, "stranded", moveErr.Stranded())
	}
	logger.ErrorContext(c.Request().Context(), "backend call failed", attrs...)

	return echo.NewHTTPError(http.StatusInternalServerError, message)
}

// decodeBody reads a JSON object from the request body. Content-Type is not
// checked.
func decodeBody(c echo.Context, v any) error {
	body := c.Request().Body
	if body == nil {
		return errEmptyBody
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return errInvalidBody
	}
	return nil
}
