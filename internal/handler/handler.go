// Package handler exposes the services over HTTP. Handlers bind the request,
// call a service with the caller and organization from the context, and
// return service errors untouched for ErrorHandler to render.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"ugc-service/internal/apperror"
	"ugc-service/internal/repository"
	"ugc-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		logger.FromContext(c).Warn("Invalid request body", zap.Error(err))
		return apperror.BadRequest("Invalid request body")
	}
	return nil
}

func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

func pageFromQuery(c echo.Context, fallbackLimit int) repository.Page {
	return repository.NewPage(queryInt(c, "page"), queryInt(c, "limit"), fallbackLimit)
}

// paginate pages a result set that is loaded whole
func paginate[T any](items []T, page repository.Page) ([]T, repository.Pagination) {
	total := len(items)
	start := min(page.Offset(), total)
	end := min(start+page.Limit, total)
	return items[start:end], page.Meta(int64(total))
}

func success(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ErrorHandler renders every error as {"error": message}. Unexpected errors
// become 500 and carry their detail only outside production.
func ErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := http.StatusInternalServerError, "Internal server error"
		var stack []byte
		if appErr, ok := apperror.As(err); ok {
			code, message, stack = appErr.Code, appErr.Message, appErr.Stack
		} else {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				code = httpErr.Code
				switch {
				case code == http.StatusNotFound:
					message = "Not found"
				case code < http.StatusInternalServerError:
					message = fmt.Sprint(httpErr.Message)
				}
			}
		}

		body := echo.Map{"error": message}
		if code >= http.StatusInternalServerError {
			logger.FromContext(c).Error("Unhandled error",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
				zap.ByteString("stack", stack))
			if !production {
				body["message"] = err.Error()
				if len(stack) > 0 {
					body["stack"] = string(stack)
				}
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.FromContext(c).Error("Failed to write error response", zap.Error(err))
		}
	}
}
