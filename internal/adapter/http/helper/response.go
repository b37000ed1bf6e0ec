package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todofront/internal/core/domain"
	"todofront/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

// SendCreateResult answers a JSON create with the relay's own result shape.
func SendCreateResult(c *gin.Context, result domain.CreateResult) {
	if result.FieldErrors.HasErrors() {
		c.JSON(http.StatusUnprocessableEntity, response.CreateResponse{Error: result.FieldErrors})
		return
	}

	c.JSON(http.StatusCreated, response.CreateResponse{Success: true})
}

// SendView answers with the session view; a view carrying an error is a 502
// whose details still hold the items that were preserved.
func SendView(c *gin.Context, view domain.TodoView) {
	if view.HasError() {
		SendError(c, http.StatusBadGateway, "BACKEND_ERROR", []response.ValidationError{
			{
				Field:   "backend",
				Message: view.Error,
			},
		}, view)
		return
	}

	c.JSON(http.StatusOK, response.ViewResponse{Data: view})
}

// SendRelayError maps a relay failure onto a status code.
func SendRelayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyID):
		SendBadRequestError(c, "id", err.Error())
	case domain.IsBackendFailure(err):
		SendBackendError(c, err)
	default:
		SendInternalError(c, "Internal server error")
	}
}

func SendBackendError(c *gin.Context, err error) {
	errors := []response.ValidationError{
		{
			Field:   "backend",
			Message: err.Error(),
		},
	}

	SendError(c, http.StatusBadGateway, "BACKEND_ERROR", errors)
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors, details...)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", errors)
}
