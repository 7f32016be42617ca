// Package response defines the JSON envelope every handler replies with:
// {"success": true, "data": ...} or {"success": false, "error": {code, message}}.
package response

import "github.com/gin-gonic/gin"

type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   *errBody `json:"error,omitempty"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, envelope{Success: false, Error: &errBody{Code: code, Message: message}})
}
