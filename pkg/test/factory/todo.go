package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"

	"todofront/internal/core/domain"
)

type todoSeed struct {
	ID       int
	Title    string
	Category string
}

// NewTodoWire builds a backend todo with random id, title and category.
// CreatedAt, Description and DueDate may be overridden as strings.
func NewTodoWire(customData ...map[string]any) domain.TodoWire {
	seedData := make([]map[string]any, 0, len(customData))
	wire := domain.TodoWire{
		CreatedAt: domain.FormatISO(time.Now()),
	}

	for _, data := range customData {
		seed := map[string]any{}

		for key, value := range data {
			switch key {
			case "CreatedAt":
				wire.CreatedAt, _ = value.(string)
			case "Description":
				if text, ok := value.(string); ok {
					wire.Description = &text
				}
			case "DueDate":
				if text, ok := value.(string); ok {
					wire.DueDate = &text
				}
			default:
				seed[key] = value
			}
		}

		seedData = append(seedData, seed)
	}

	seed := fab.New(todoSeed{}).Build(seedData...)

	wire.ID = seed.ID
	wire.Title = seed.Title
	wire.Category = seed.Category

	return wire
}

// NewTodoWires builds n todos with ids 1..n.
func NewTodoWires(n int) []domain.TodoWire {
	wires := make([]domain.TodoWire, 0, n)

	for i := 1; i <= n; i++ {
		wires = append(wires, NewTodoWire(map[string]any{"ID": i}))
	}

	return wires
}
