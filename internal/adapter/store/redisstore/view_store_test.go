package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	redismock "github.com/go-redis/redismock/v9"
	. "github.com/onsi/gomega"

	"todofront/internal/core/domain"
)

var ctx = context.Background()

func TestViewStore_LoadHit(t *testing.T) {
	RegisterTestingT(t)

	rdb, mock := redismock.NewClientMock()
	store := NewViewStore(rdb, time.Minute)

	view := domain.TodoView{
		Items: []domain.TodoRecord{{ID: 3, Title: "Buy milk", Category: "Errand", CreatedAt: time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)}},
	}
	data, _ := json.Marshal(view)
	mock.ExpectGet(Key("s1")).SetVal(string(data))

	loaded, found, err := store.Load(ctx, "s1")

	Expect(err).ToNot(HaveOccurred())
	Expect(found).To(BeTrue())
	Expect(loaded.Items).To(HaveLen(1))
	Expect(loaded.Items[0].ID).To(Equal(3))
	Expect(loaded.Items[0].CreatedAt.Equal(view.Items[0].CreatedAt)).To(BeTrue())
	Expect(mock.ExpectationsWereMet()).To(Succeed())
}

func TestViewStore_LoadMiss(t *testing.T) {
	RegisterTestingT(t)

	rdb, mock := redismock.NewClientMock()
	store := NewViewStore(rdb, time.Minute)

	mock.ExpectGet(Key("s1")).RedisNil()

	_, found, err := store.Load(ctx, "s1")

	Expect(err).ToNot(HaveOccurred())
	Expect(found).To(BeFalse())
	Expect(mock.ExpectationsWereMet()).To(Succeed())
}

func TestViewStore_LoadError(t *testing.T) {
	RegisterTestingT(t)

	rdb, mock := redismock.NewClientMock()
	store := NewViewStore(rdb, time.Minute)

	mock.ExpectGet(Key("s1")).SetErr(errors.New("connection reset"))

	_, found, err := store.Load(ctx, "s1")

	Expect(err).To(MatchError(ContainSubstring("connection reset")))
	Expect(found).To(BeFalse())
}

func TestViewStore_LoadCorrupt(t *testing.T) {
	RegisterTestingT(t)

	rdb, mock := redismock.NewClientMock()
	store := NewViewStore(rdb, time.Minute)

	mock.ExpectGet(Key("s1")).SetVal("{not json")

	_, _, err := store.Load(ctx, "s1")

	Expect(err).To(MatchError(ContainSubstring("decode view")))
}

func TestViewStore_SaveWithTTL(t *testing.T) {
	RegisterTestingT(t)

	rdb, mock := redismock.NewClientMock()
	store := NewViewStore(rdb, 30*time.Minute)

	view := domain.TodoView{Loading: true, Items: []domain.TodoRecord{}}
	data, _ := json.Marshal(view)
	mock.ExpectSet(Key("s1"), string(data), 30*time.Minute).SetVal("OK")

	Expect(store.Save(ctx, "s1", view)).To(Succeed())
	Expect(mock.ExpectationsWereMet()).To(Succeed())
}

func TestViewStore_SaveError(t *testing.T) {
	RegisterTestingT(t)

	rdb, mock := redismock.NewClientMock()
	store := NewViewStore(rdb, time.Minute)

	view := domain.TodoView{Items: []domain.TodoRecord{}}
	data, _ := json.Marshal(view)
	mock.ExpectSet(Key("s1"), string(data), time.Minute).SetErr(errors.New("READONLY"))

	Expect(store.Save(ctx, "s1", view)).To(MatchError(ContainSubstring("READONLY")))
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	RegisterTestingT(t)

	_, err := NewClient(ctx, "http://localhost:6379")

	var configErr *domain.ConfigurationError
	Expect(errors.As(err, &configErr)).To(BeTrue())
	Expect(configErr.Key).To(Equal("REDIS_URL"))
}

func TestViewStore_NextTokenIsSharedAndOutlivesTheView(t *testing.T) {
	RegisterTestingT(t)

	rdb, mock := redismock.NewClientMock()
	store := NewViewStore(rdb, time.Minute)

	mock.ExpectIncr(TokenKey("s1")).SetVal(4)
	mock.ExpectExpire(TokenKey("s1"), 2*time.Minute).SetVal(true)

	token, err := store.NextToken(ctx, "s1")

	Expect(err).ToNot(HaveOccurred())
	Expect(token).To(Equal(uint64(4)))
	Expect(mock.ExpectationsWereMet()).To(Succeed())
}

func TestViewStore_NextTokenError(t *testing.T) {
	RegisterTestingT(t)

	rdb, mock := redismock.NewClientMock()
	store := NewViewStore(rdb, time.Minute)

	mock.ExpectIncr(TokenKey("s1")).SetErr(errors.New("LOADING"))

	_, err := store.NextToken(ctx, "s1")

	Expect(err).To(MatchError(ContainSubstring("LOADING")))
}
