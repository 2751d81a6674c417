package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a success response with 201
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response, mapping AppError codes to
// HTTP statuses.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case errors.IsValidation(err):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.IsReferentialIntegrity(err):
		status = http.StatusConflict
		message = err.Error()
	case errors.IsUnauthorized(err):
		status = http.StatusUnauthorized
		message = err.Error()
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    status,
			Message: message,
		},
	})
}

// RespondWithBadRequest sends a 400 with the given message.
func RespondWithBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error: &Error{
			Code:    http.StatusBadRequest,
			Message: message,
		},
	})
}
