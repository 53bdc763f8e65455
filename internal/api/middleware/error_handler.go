package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whisper-sync/internal/api/errors"
)

// ErrorHandler middleware handles errors consistently across the API
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
			apiErr.RequestID = requestID
		case error:
			// the cause stays in the log, the client gets a generic message
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)

			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		default:
			logger.Error("Unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)

			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		}

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError is a helper function for handlers to return errors.
// Application errors are translated to their API form; anything else
// panics so ErrorHandler can log it and answer 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if apiErr := errors.FromAppError(err); apiErr != nil {
		resp := *apiErr
		resp.RequestID = c.GetString(RequestIDKey)
		_ = c.Error(err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(resp.HTTPStatus(), &resp)
		return
	}

	panic(err)
}
