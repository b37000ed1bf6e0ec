package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/gomega"

	ct "todofront/pkg/context"
)

type seen struct {
	session   string
	requestID string
	minted    bool
}

func newRouter(into *seen) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CurrentMiddleware(1800, false))
	router.GET("/", func(c *gin.Context) {
		current := ct.GetCurrent(c.Request.Context())
		into.session = GetSessionID(c)
		into.requestID = current.RequestID()
		into.minted = c.GetBool(ct.SessionNewKey)
		c.Status(http.StatusOK)
	})
	return router
}

func TestCurrentMiddleware_IssuesSessionCookie(t *testing.T) {
	RegisterTestingT(t)
	var got seen

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	newRouter(&got).ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	Expect(cookies).To(HaveLen(1))
	Expect(cookies[0].Name).To(Equal(SessionCookie))
	Expect(cookies[0].HttpOnly).To(BeTrue())
	Expect(cookies[0].Value).To(Equal(got.session))
	Expect(got.minted).To(BeTrue())

	_, err := uuid.Parse(got.session)
	Expect(err).ToNot(HaveOccurred())
	Expect(w.Header().Get(RequestIDHeader)).To(Equal(got.requestID))
}

func TestCurrentMiddleware_ReusesKnownSession(t *testing.T) {
	RegisterTestingT(t)
	var got seen
	session := uuid.New().String()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session})
	req.Header.Set(RequestIDHeader, "req-42")
	newRouter(&got).ServeHTTP(w, req)

	Expect(got.session).To(Equal(session))
	Expect(got.requestID).To(Equal("req-42"))
	Expect(got.minted).To(BeFalse())
	Expect(w.Result().Cookies()).To(BeEmpty())
}

func TestCurrentMiddleware_ReplacesForgedSession(t *testing.T) {
	RegisterTestingT(t)
	var got seen

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc/passwd"})
	newRouter(&got).ServeHTTP(w, req)

	Expect(got.session).ToNot(Equal("../../etc/passwd"))
	Expect(got.minted).To(BeTrue())
	Expect(w.Result().Cookies()).To(HaveLen(1))
}
