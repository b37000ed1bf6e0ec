package port

import "todofront/internal/core/domain"

type Validator interface {
	Validate(raw domain.RawInput) (domain.TodoInput, domain.FieldErrors)
}
