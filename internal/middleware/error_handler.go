package middleware

import (
	"net/http"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached to the context as an
// ErrorResponse. Technical details are only exposed outside production.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := apperrors.MapError(c.Errors.Last().Err)

		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.String("code", appErr.Code),
			zap.String("error", appErr.TechnicalMessage),
		}
		if appErr.OriginalError != nil {
			fields = append(fields, zap.NamedError("cause", appErr.OriginalError))
		}
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.GlobalLogger.Zap().Error("request failed", fields...)
		} else {
			logger.GlobalLogger.Zap().Warn("request rejected", fields...)
		}

		if c.Writer.Written() {
			return
		}
		resp := models.ErrorResponse{
			Success: false,
			Message: appErr.UserMessage,
			Code:    appErr.Code,
			Errors:  appErr.Fields,
		}
		if !production && appErr.OriginalError != nil {
			resp.Error = appErr.OriginalError.Error()
		}
		c.JSON(appErr.HTTPStatus, resp)
	}
}

// NotFound answers unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Route " + c.Request.URL.Path + " not found",
			Code:    apperrors.ErrCodeNotFound,
		})
	}
}

// Recovery turns panics into a 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.GlobalLogger.Zap().Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: apperrors.MsgInternalError,
			Code:    apperrors.ErrCodeInternal,
		})
	})
}
