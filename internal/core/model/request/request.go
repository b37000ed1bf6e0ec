package request

import "todofront/internal/core/domain"

// CreateTodo is the body POSTed to {backend}/api/todo. Absent optional fields are omitted.
type CreateTodo struct {
	Title       string  `json:"Title"`
	Category    string  `json:"Category"`
	Description *string `json:"Description,omitempty"`
	DueDate     *string `json:"DueDate,omitempty"`
}

func NewCreateTodo(input domain.TodoInput) CreateTodo {
	body := CreateTodo{
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
	}

	if input.DueDate != nil {
		dueDate := domain.FormatISO(*input.DueDate)
		body.DueDate = &dueDate
	}

	return body
}
