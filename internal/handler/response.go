package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vetcarepro/clinic-api/pkg/apperror"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{Success: true, Data: data}
}

func NewSuccessMessageResponse(message string, data interface{}) *Response {
	return &Response{Success: true, Message: message, Data: data}
}

func NewErrorResponse(message string) *Response {
	return &Response{Success: false, Message: message}
}

// Error writes the envelope for a service error, mapping its code onto the
// HTTP status. Internal errors never leak their cause to the client.
func Error(c *gin.Context, err error) {
	status := apperror.StatusOf(err)

	var ae *apperror.AppError
	message := "internal server error"
	if errors.As(err, &ae) && status != http.StatusInternalServerError {
		message = ae.Message
	}

	c.JSON(status, NewErrorResponse(message))
}

// BadRequest writes a validation failure for a binding error.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
}
