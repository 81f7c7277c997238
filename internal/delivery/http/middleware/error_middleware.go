package middleware

import (
	"errors"
	"interview-experience-backend/internal/delivery/http/response"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/pkg/apperror"
	"interview-experience-backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Server errors carry the cause in the "error" field; client errors do not.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal("", err)
		}

		if appErr.Code < http.StatusInternalServerError {
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		var detail interface{}
		if appErr.Err != nil {
			detail = appErr.Err.Error()
		}
		logger.Log.Error("request failed",
			"request_id", c.GetString(string(domain.KeyRequestID)),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", appErr.Code,
			"error", detail,
		)
		response.Error(c, appErr.Code, appErr.Message, detail)
	}
}
