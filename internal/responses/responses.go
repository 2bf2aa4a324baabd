package responses

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/pkg/apperror"
	"storefront/pkg/logger"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// WriteError renders err with the status registered for its code. Untyped
// errors become INTERNAL_FAULT.
func WriteError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if err == nil {
		err = errors.New("unknown error")
	}

	status, body := render(err)

	if log != nil {
		ctx := log.WithFields(c.UserContext(), map[string]any{
			"error_code": body.Code,
			"status":     status,
		})
		if status >= fiber.StatusInternalServerError {
			log.Error(ctx, "request.failed", err)
		} else {
			log.Debug(ctx, "request.rejected")
		}
	}

	return c.Status(status).JSON(body)
}

func render(err error) (int, ErrorBody) {
	if typed := apperror.As(err); typed != nil {
		meta := apperror.MetadataFor(typed.Code())
		body := ErrorBody{
			Code:    string(typed.Code()),
			Message: typed.Message(),
			Details: typed.Details(),
		}
		if meta.ExposeCause {
			if cause := typed.Unwrap(); cause != nil {
				body.Error = cause.Error()
			} else {
				body.Error = typed.Message()
			}
		}
		return meta.HTTPStatus, body
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := codeForStatus(fe.Code)
		body := ErrorBody{Code: string(code), Message: fe.Message}
		if fe.Code >= fiber.StatusInternalServerError {
			body.Error = fe.Message
		}
		return fe.Code, body
	}

	meta := apperror.MetadataFor(apperror.CodeInternal)
	return meta.HTTPStatus, ErrorBody{
		Code:    string(apperror.CodeInternal),
		Message: meta.PublicMessage,
		Error:   err.Error(),
	}
}

func codeForStatus(status int) apperror.Code {
	switch {
	case status == fiber.StatusNotFound:
		return apperror.CodeNotFound
	case status == fiber.StatusUnauthorized:
		return apperror.CodeUnauthenticated
	case status == fiber.StatusForbidden:
		return apperror.CodeForbidden
	case status == fiber.StatusTooManyRequests:
		return apperror.CodeRateLimited
	case status >= 400 && status < 500:
		return apperror.CodeInvalidFormat
	}
	return apperror.CodeInternal
}

// ErrorHandler is the application-wide fallback for errors returned by
// handlers and middleware.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return WriteError(c, log, err)
	}
}
