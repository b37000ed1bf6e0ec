package test

import (
	"context"
	"sync"

	"todofront/internal/core/domain"
	"todofront/internal/core/model/request"
)

// FakeBackend is an in-process TodoBackend that records every call.
// Unset funcs behave like a healthy backend with an empty list.
type FakeBackend struct {
	CreateFn func(ctx context.Context, body request.CreateTodo) error
	ListFn   func(ctx context.Context) ([]domain.TodoWire, error)
	DeleteFn func(ctx context.Context, id string) error

	mu        sync.Mutex
	created   []request.CreateTodo
	deleted   []string
	listCalls int
}

func (f *FakeBackend) CreateTodo(ctx context.Context, body request.CreateTodo) error {
	f.mu.Lock()
	f.created = append(f.created, body)
	f.mu.Unlock()

	if f.CreateFn != nil {
		return f.CreateFn(ctx, body)
	}

	return nil
}

func (f *FakeBackend) ListTodos(ctx context.Context) ([]domain.TodoWire, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	if f.ListFn != nil {
		return f.ListFn(ctx)
	}

	return []domain.TodoWire{}, nil
}

func (f *FakeBackend) DeleteTodo(ctx context.Context, id string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()

	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}

	return nil
}

func (f *FakeBackend) Created() []request.CreateTodo {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]request.CreateTodo(nil), f.created...)
}

func (f *FakeBackend) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.deleted...)
}

func (f *FakeBackend) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.listCalls
}

// FakeRelay stands in for the relay when a test drives the presenter or the handlers directly.
type FakeRelay struct {
	CreateFn func(ctx context.Context, raw domain.RawInput) (domain.CreateResult, error)
	ListFn   func(ctx context.Context) ([]domain.TodoWire, error)
	DeleteFn func(ctx context.Context, id string) error

	mu          sync.Mutex
	createCalls int
	listCalls   int
	deleteCalls int
}

func (f *FakeRelay) Create(ctx context.Context, raw domain.RawInput) (domain.CreateResult, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()

	if f.CreateFn != nil {
		return f.CreateFn(ctx, raw)
	}

	return domain.CreateResult{Success: true}, nil
}

func (f *FakeRelay) List(ctx context.Context) ([]domain.TodoWire, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	if f.ListFn != nil {
		return f.ListFn(ctx)
	}

	return []domain.TodoWire{}, nil
}

func (f *FakeRelay) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	f.deleteCalls++
	f.mu.Unlock()

	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}

	return nil
}

func (f *FakeRelay) CreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.createCalls
}

func (f *FakeRelay) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.listCalls
}

func (f *FakeRelay) DeleteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.deleteCalls
}

// FakeViewStore is a ViewStore whose failures can be switched on.
type FakeViewStore struct {
	LoadErr error
	SaveErr error

	mu    sync.Mutex
	views map[string]domain.TodoView
	saves int
}

func (f *FakeViewStore) Load(ctx context.Context, session string) (domain.TodoView, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.LoadErr != nil {
		return domain.TodoView{}, false, f.LoadErr
	}

	view, ok := f.views[session]
	return view, ok, nil
}

func (f *FakeViewStore) Save(ctx context.Context, session string, view domain.TodoView) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saves++

	if f.SaveErr != nil {
		return f.SaveErr
	}

	if f.views == nil {
		f.views = make(map[string]domain.TodoView)
	}

	f.views[session] = view
	return nil
}

func (f *FakeViewStore) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.saves
}
