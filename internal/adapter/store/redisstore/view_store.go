package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"todofront/internal/core/domain"
)

const (
	keyPrefix   = "todofront:view:"
	tokenPrefix = "todofront:token:"
)

// ViewStore keeps session views in Redis so several instances can serve one browser.
type ViewStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViewStore(rdb *redis.Client, ttl time.Duration) *ViewStore {
	return &ViewStore{rdb: rdb, ttl: ttl}
}

// NewClient connects to a redis:// or rediss:// URL.
func NewClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: "REDIS_URL", Err: err}
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

func Key(session string) string {
	return keyPrefix + session
}

func TokenKey(session string) string {
	return tokenPrefix + session
}

// NextToken increments the session counter shared by every instance. The
// counter lives twice as long as the view so it is never reissued under it.
func (s *ViewStore) NextToken(ctx context.Context, session string) (uint64, error) {
	token, err := s.rdb.Incr(ctx, TokenKey(session)).Uint64()
	if err != nil {
		return 0, fmt.Errorf("next token: %w", err)
	}

	if err := s.rdb.Expire(ctx, TokenKey(session), 2*s.ttl).Err(); err != nil {
		return 0, fmt.Errorf("expire token: %w", err)
	}

	return token, nil
}

func (s *ViewStore) Load(ctx context.Context, session string) (domain.TodoView, bool, error) {
	data, err := s.rdb.Get(ctx, Key(session)).Bytes()

	if errors.Is(err, redis.Nil) {
		return domain.TodoView{}, false, nil
	}

	if err != nil {
		return domain.TodoView{}, false, fmt.Errorf("load view: %w", err)
	}

	var view domain.TodoView
	if err := json.Unmarshal(data, &view); err != nil {
		return domain.TodoView{}, false, fmt.Errorf("decode view: %w", err)
	}

	return view, true, nil
}

func (s *ViewStore) Save(ctx context.Context, session string, view domain.TodoView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}

	if err := s.rdb.Set(ctx, Key(session), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("save view: %w", err)
	}

	return nil
}
