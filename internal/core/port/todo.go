package port

import (
	"context"

	"todofront/internal/core/domain"
	"todofront/internal/core/model/request"
)

type TodoBackend interface {
	CreateTodo(ctx context.Context, body request.CreateTodo) error
	ListTodos(ctx context.Context) ([]domain.TodoWire, error)
	DeleteTodo(ctx context.Context, id string) error
}

type TodoRelay interface {
	Create(ctx context.Context, raw domain.RawInput) (domain.CreateResult, error)
	List(ctx context.Context) ([]domain.TodoWire, error)
	Delete(ctx context.Context, id string) error
}

type Presenter interface {
	Mount(ctx context.Context, session string) domain.TodoView
	Refresh(ctx context.Context, session string) domain.TodoView
	Remove(ctx context.Context, session string, id string) domain.TodoView
	View(ctx context.Context, session string) domain.TodoView
}

// ViewStore keeps the presenter state of each session between requests.
type ViewStore interface {
	Load(ctx context.Context, session string) (domain.TodoView, bool, error)
	Save(ctx context.Context, session string, view domain.TodoView) error
}

// TokenIssuer hands out per-session request tokens that increase across every
// presenter sharing the store.
type TokenIssuer interface {
	NextToken(ctx context.Context, session string) (uint64, error)
}
