package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	MsgUnauthorized   = "Unauthorized"
	MsgInternalServer = "Internal server error"
	MsgInvalidPayload = "Invalid request payload"
	MsgTooManyRequest = "Too many requests, please try again later"
	MsgUserNotFound   = "User not found"
)

// ErrorBody is the shape of every non-2xx response.
type ErrorBody struct {
	Message string `json:"message"`
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Message: message})
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Message: message})
}

func Unauthorized(c *gin.Context) {
	Abort(c, http.StatusUnauthorized, MsgUnauthorized)
}

// Internal hands err to the error-handler middleware, which logs it and
// renders a generic 500.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
