package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sharespace/internal/transport/http/response"
)

// ErrorHandler renders errors attached with c.Error as a generic 500 unless
// the handler already wrote a response.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Error("unhandled request error",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(ContextRequestIDKey)),
				zap.Error(e.Err),
			)
		}
		if !c.Writer.Written() {
			response.Error(c, http.StatusInternalServerError, response.MsgInternalServer)
		}
	}
}

func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(ContextRequestIDKey)),
			zap.Stack("stack"),
		)
		response.Abort(c, http.StatusInternalServerError, response.MsgInternalServer)
	})
}
