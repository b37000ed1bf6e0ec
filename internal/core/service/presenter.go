package service

import (
	"context"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"todofront/internal/core/domain"
	"todofront/internal/core/port"
	tel "todofront/internal/core/telemetry"
)

// sessionState orders the overlapping operations of one session. Its mutex
// serializes that session's ViewStore reads and writes.
type sessionState struct {
	mu       sync.Mutex
	refs     int
	issued   uint64
	inflight int
}

// TodoPresenter owns the per-session view state: loading flag, error message and item list.
type TodoPresenter struct {
	relay     port.TodoRelay
	store     port.ViewStore
	telemetry port.Telemetry
	logger    *otelzap.Logger

	// mu guards the two maps only and is never held across store I/O.
	mu       sync.Mutex
	sessions map[string]*sessionState
	views    map[string]domain.TodoView
}

func NewTodoPresenter(relay port.TodoRelay, store port.ViewStore, telemetry port.Telemetry, logger *otelzap.Logger) *TodoPresenter {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}

	return &TodoPresenter{
		relay:     relay,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
		sessions:  make(map[string]*sessionState),
		views:     make(map[string]domain.TodoView),
	}
}

// Mount is the first render of a page: it refreshes exactly once.
func (p *TodoPresenter) Mount(ctx context.Context, session string) domain.TodoView {
	return p.Refresh(ctx, session)
}

// Refresh applies a list response only when its token is newer than the
// revision already stored with the view.
func (p *TodoPresenter) Refresh(ctx context.Context, session string) domain.TodoView {
	ctx, span := p.telemetry.StartPresenterSpan(ctx, "refresh", session, nil)
	defer span.End()

	state := p.acquire(session)
	defer p.release(session, state)

	start := time.Now()
	token := p.begin(ctx, session, state, true)

	wires, err := p.relay.List(ctx)

	view := p.finish(ctx, session, state, func(view *domain.TodoView) {
		if token <= view.Revision {
			p.logger.Ctx(ctx).Debug("Discarding stale todo list",
				zap.String("session", session),
				zap.Uint64("token", token),
				zap.Uint64("revision", view.Revision))
			return
		}

		view.Revision = token

		if err != nil {
			view.Error = err.Error()
			return
		}

		view.Items = domain.RecordsFromWire(wires)
	})

	p.telemetry.RecordPresenterOperation(ctx, "refresh", session, time.Since(start), err)

	return view
}

func (p *TodoPresenter) Remove(ctx context.Context, session string, id string) domain.TodoView {
	ctx, span := p.telemetry.StartPresenterSpan(ctx, "remove", session, map[string]interface{}{"todo.id": id})
	defer span.End()

	state := p.acquire(session)
	defer p.release(session, state)

	start := time.Now()
	p.begin(ctx, session, state, false)

	err := p.relay.Delete(ctx, id)

	if err == nil {
		p.Refresh(ctx, session)
	}

	view := p.finish(ctx, session, state, func(view *domain.TodoView) {
		if err != nil {
			view.Error = err.Error()
		}
	})

	p.telemetry.RecordPresenterOperation(ctx, "remove", session, time.Since(start), err)

	return view
}

func (p *TodoPresenter) View(ctx context.Context, session string) domain.TodoView {
	state := p.acquire(session)
	defer p.release(session, state)

	state.mu.Lock()
	defer state.mu.Unlock()

	view := p.current(ctx, session)
	view.Loading = state.inflight > 0

	return view
}

func (p *TodoPresenter) acquire(session string) *sessionState {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.sessions[session]
	if !ok {
		state = &sessionState{}
		p.sessions[session] = state
	}

	state.refs++

	return state
}

func (p *TodoPresenter) release(session string, state *sessionState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state.refs--

	if state.refs == 0 {
		delete(p.sessions, session)
	}
}

// begin marks an operation in flight and clears the error. Ordered operations
// also draw a request token.
func (p *TodoPresenter) begin(ctx context.Context, session string, state *sessionState, ordered bool) uint64 {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.inflight++

	view := p.current(ctx, session)
	view.Loading = true
	view.Error = ""

	var token uint64
	if ordered {
		token = p.nextToken(ctx, session, state, view.Revision)
	}

	p.save(ctx, session, view)

	return token
}

func (p *TodoPresenter) finish(ctx context.Context, session string, state *sessionState, apply func(view *domain.TodoView)) domain.TodoView {
	state.mu.Lock()
	defer state.mu.Unlock()

	view := p.current(ctx, session)

	apply(&view)

	state.inflight--
	view.Loading = state.inflight > 0

	p.save(ctx, session, view)

	return view
}

// nextToken prefers the store's shared counter so instances behind one Redis
// order each other's responses. The local counter never falls behind the
// stored revision.
func (p *TodoPresenter) nextToken(ctx context.Context, session string, state *sessionState, revision uint64) uint64 {
	if issuer, ok := p.store.(port.TokenIssuer); ok {
		token, err := issuer.NextToken(ctx, session)
		if err == nil && token > revision {
			return token
		}

		if err != nil {
			p.logger.Ctx(ctx).Error("Failed to issue request token",
				zap.String("session", session),
				zap.Error(err))
		}
	}

	if state.issued < revision {
		state.issued = revision
	}

	state.issued++

	return state.issued
}

// current must be called with the session's state lock held.
func (p *TodoPresenter) current(ctx context.Context, session string) domain.TodoView {
	if view, ok := p.cached(session); ok {
		return view
	}

	view := domain.TodoView{Items: []domain.TodoRecord{}}

	if p.store == nil {
		return view
	}

	stored, found, err := p.store.Load(ctx, session)

	if err != nil {
		p.logger.Ctx(ctx).Error("Failed to load todo view",
			zap.String("session", session),
			zap.Error(err))
		return view
	}

	if found {
		if stored.Items == nil {
			stored.Items = []domain.TodoRecord{}
		}
		return stored
	}

	return view
}

// save must be called with the session's state lock held.
func (p *TodoPresenter) save(ctx context.Context, session string, view domain.TodoView) {
	if p.store == nil {
		p.remember(session, &view)
		return
	}

	p.remember(session, nil)

	if err := p.store.Save(ctx, session, view); err != nil {
		p.logger.Ctx(ctx).Error("Failed to save todo view",
			zap.String("session", session),
			zap.Error(err))

		p.remember(session, &view)
	}
}

func (p *TodoPresenter) cached(session string) (domain.TodoView, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	view, ok := p.views[session]
	if !ok {
		return view, false
	}

	return copyView(view), true
}

// remember keeps view in process memory; nil forgets it.
func (p *TodoPresenter) remember(session string, view *domain.TodoView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if view == nil {
		delete(p.views, session)
		return
	}

	p.views[session] = *view
}

func copyView(view domain.TodoView) domain.TodoView {
	items := make([]domain.TodoRecord, len(view.Items))
	copy(items, view.Items)
	view.Items = items

	return view
}
