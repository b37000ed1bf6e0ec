package context

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
)

func TestCurrent_RoundTripThroughContext(t *testing.T) {
	RegisterTestingT(t)

	current := NewCurrent()
	current.Set(RequestIDKey, "req-1")
	current.Set(SessionIDKey, "sess-1")

	ctx := WithCurrent(context.Background(), current)
	found, ok := FromContext(ctx)

	Expect(ok).To(BeTrue())
	Expect(found.RequestID()).To(Equal("req-1"))
	Expect(found.SessionID()).To(Equal("sess-1"))
}

func TestCurrent_MissingFromContext(t *testing.T) {
	RegisterTestingT(t)

	_, ok := FromContext(context.Background())
	Expect(ok).To(BeFalse())

	current := GetCurrent(context.Background())
	Expect(current.RequestID()).To(BeEmpty())
}

func TestCurrent_GetStringIgnoresOtherTypes(t *testing.T) {
	RegisterTestingT(t)

	current := NewCurrent()
	current.Set("count", 3)

	_, ok := current.GetString("count")
	Expect(ok).To(BeFalse())
	Expect(current.All()).To(HaveKeyWithValue("count", 3))
}
