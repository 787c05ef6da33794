package http

import (
	"errors"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/order"
	"production/internal/generated/servers"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor classifies use case errors. Order matters: an illegal transition
// is also a ValueIsInvalidError.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, commands.ErrEventNotPublished):
		return http.StatusInternalServerError
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, commands.ErrUnsupportedTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Client errors carry the error text, which
// names the offending value; server errors are logged and answered with failure.
func (s *Server) fail(ctx echo.Context, err error, failure string) error {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), failure,
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(code, servers.Error{Code: code, Message: failure})
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: err.Error()})
}

func (s *Server) reject(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// ErrorHandler renders errors raised outside the handlers, such as routing and
// parameter binding failures, in the same Error shape.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if text, ok := httpErr.Message.(string); ok {
			message = text
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
}
