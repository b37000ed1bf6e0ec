package memory

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"todofront/internal/core/domain"
)

// ViewStore keeps session views in process memory. Idle sessions expire after ttl.
type ViewStore struct {
	cache  *cache.Cache
	tokens *cache.Cache
	ttl    time.Duration

	mu sync.Mutex
}

func NewViewStore(ttl time.Duration) *ViewStore {
	return &ViewStore{
		cache:  cache.New(ttl, 2*ttl),
		tokens: cache.New(2*ttl, 4*ttl),
		ttl:    ttl,
	}
}

func (s *ViewStore) Load(ctx context.Context, session string) (domain.TodoView, bool, error) {
	value, found := s.cache.Get(session)
	if !found {
		return domain.TodoView{}, false, nil
	}

	view, ok := value.(domain.TodoView)
	if !ok {
		return domain.TodoView{}, false, nil
	}

	items := make([]domain.TodoRecord, len(view.Items))
	copy(items, view.Items)
	view.Items = items

	return view, true, nil
}

func (s *ViewStore) Save(ctx context.Context, session string, view domain.TodoView) error {
	s.cache.Set(session, view, s.ttl)
	return nil
}

// NextToken counts per session. Counters outlive their views so a token is
// never reissued while the view still carries it.
func (s *ViewStore) NextToken(ctx context.Context, session string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token uint64
	if value, found := s.tokens.Get(session); found {
		token, _ = value.(uint64)
	}

	token++
	s.tokens.Set(session, token, 2*s.ttl)

	return token, nil
}

func (s *ViewStore) Count() int {
	return s.cache.ItemCount()
}
