package server

import (
	"github.com/gin-gonic/gin"
)

// envelope is the uniform reply shape of every /api endpoint
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// respondOK replies with a successful envelope
func respondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

// respondFail replies with a failed envelope and aborts the chain.
// Status 200 marks an application-level failure the client should show as is.
func respondFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}
