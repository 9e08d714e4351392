package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Status:  "Failed",
		Message: message,
	})
}

func RespondSuccess(c *gin.Context, message string) {
	c.JSON(200, Response{
		Status:  "Success",
		Message: message,
	})
}

func RespondSuccessData(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}
