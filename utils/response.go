package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Response is the uniform envelope returned by every non-login endpoint.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Success writes a 200 success envelope.
func Success(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: message})
}

// Error writes an error envelope with the given HTTP status.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, Response{Status: StatusError, Message: message})
}
