package response

import "todofront/internal/core/domain"

type CreateResponse struct {
	Error   domain.FieldErrors `json:"error,omitempty"`
	Success bool               `json:"success,omitempty"`
}

type ViewResponse struct {
	Data domain.TodoView `json:"data"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
