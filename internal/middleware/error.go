package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
)

// RenderError writes err as the JSON error body of the response. AppErrors
// keep their status, code and message; any other error becomes
// INTERNAL_ERROR. Internal causes are logged and never sent to the client.
func RenderError(c *gin.Context, err error) {
	log := logger.Named("http").With(
		"request_id", RequestID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Errorw("unexpected error", "error", err.Error())
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		log.Errorw("app error", "code", appErr.Code, "internal", appErr.Internal.Error())
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// ErrorHandler renders the last error recorded on the context with c.Error,
// including render failures such as a body that cannot be encoded. A
// response that was already written is left alone and the error only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		if c.Writer.Written() {
			logger.Named("http").Errorw("error after response was written",
				"request_id", RequestID(c),
				"path", c.Request.URL.Path,
				"error", err.Error(),
			)
			return
		}
		RenderError(c, err)
	}
}
