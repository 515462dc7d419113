package utils

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope the content service may wrap payloads in.
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   interface{}     `json:"error,omitempty"`
}

// ErrorMessage extracts the most specific message from an error body. Both
// {"error": "..."} and the envelope form are understood.
func ErrorMessage(body []byte) string {
	var env struct {
		Message string      `json:"message"`
		Error   interface{} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if s, ok := env.Error.(string); ok && s != "" {
		return s
	}
	return env.Message
}

// Unenvelope returns the payload of body: the "data" member when body is an
// envelope, otherwise body itself.
func Unenvelope(body []byte) []byte {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return body
	}
	if data, ok := probe["data"]; ok {
		if _, ok := probe["success"]; ok {
			return data
		}
	}
	return body
}

// The helpers below are used by the in-process content service.

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": data})
}

func ErrorResponse(c *gin.Context, statusCode int, message string, err interface{}) {
	c.JSON(statusCode, gin.H{"success": false, "message": message, "error": err})
}

func BadRequestResponse(c *gin.Context, message string, err interface{}) {
	ErrorResponse(c, http.StatusBadRequest, message, err)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message, message)
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message, message)
}

func InternalServerErrorResponse(c *gin.Context, message string, err interface{}) {
	ErrorResponse(c, http.StatusInternalServerError, message, err)
}
