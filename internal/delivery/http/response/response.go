package response

import (
	"interview-experience-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON envelope
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// MessageBody is the bare confirmation shape the web client reads
type MessageBody struct {
	Message string `json:"message"`
}

// TokenBody is returned by a successful login
type TokenBody struct {
	Token string `json:"token"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

// Message sends {"message": ...}
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, MessageBody{Message: message})
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}
