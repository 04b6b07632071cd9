package utils

import "github.com/gin-gonic/gin"

type SuccessEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorEnvelope{
		Success: false,
		Message: message,
	})
}
