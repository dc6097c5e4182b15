package handlers

import (
	"errors"

	"agrofeira/internal/apperrors"
	"agrofeira/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindValidation:      fiber.StatusBadRequest,
	apperrors.KindUnauthenticated: fiber.StatusUnauthorized,
	apperrors.KindForbidden:       fiber.StatusForbidden,
	apperrors.KindNotFound:        fiber.StatusNotFound,
	apperrors.KindInternal:        fiber.StatusInternalServerError,
}

// ErrorHandler renders any error returned by a handler or middleware. Typed
// domain errors map to their status; fiber errors keep theirs; everything
// else is logged and hidden behind a generic 500.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			status := kindStatus[appErr.Kind]
			if appErr.Kind == apperrors.KindInternal {
				return internalError(c, log, err)
			}
			log.Debug().Err(err).Str("path", c.Path()).Int("status", status).Msg("request rejected")
			return c.Status(status).JSON(ErrorResponse{
				Error:  appErr.Message,
				Code:   appErr.Kind.String(),
				Fields: appErr.Fields,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			if fiberErr.Code >= fiber.StatusInternalServerError {
				return internalError(c, log, err)
			}
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Error: fiberErr.Message,
				Code:  codeForStatus(fiberErr.Code),
			})
		}

		return internalError(c, log, err)
	}
}

func internalError(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("internal server error")
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal server error",
		Code:  apperrors.KindInternal.String(),
	})
}

func codeForStatus(status int) string {
	for kind, s := range kindStatus {
		if s == status {
			return kind.String()
		}
	}
	if status >= 400 && status < 500 {
		return apperrors.KindValidation.String()
	}
	return apperrors.KindInternal.String()
}

// parseBody decodes the JSON body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &apperrors.Error{Kind: apperrors.KindValidation, Message: "invalid request body", Err: err}
	}
	return nil
}
