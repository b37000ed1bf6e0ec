package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ct "todofront/pkg/context"
)

const (
	SessionCookie   = "todo_session"
	RequestIDHeader = "X-Request-ID"
)

// CurrentMiddleware attaches a request id and the browser session to the request context.
// A session cookie is issued when the browser has none or sends one we did not mint.
func CurrentMiddleware(sessionMaxAge int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := ct.NewCurrent()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		current.Set(ct.RequestIDKey, requestID)
		session, minted := sessionID(c, sessionMaxAge, secure)

		current.Set(ct.SessionIDKey, session)
		current.Set("user_agent", c.Request.UserAgent())
		current.Set("ip_address", c.ClientIP())
		current.Set("method", c.Request.Method)
		current.Set("path", c.Request.URL.Path)

		c.Header(RequestIDHeader, requestID)

		c.Request = c.Request.WithContext(ct.WithCurrent(c.Request.Context(), current))

		c.Set("current", current)
		c.Set(ct.SessionIDKey, current.SessionID())
		c.Set(ct.SessionNewKey, minted)

		c.Next()
	}
}

func sessionID(c *gin.Context, maxAge int, secure bool) (string, bool) {
	if value, err := c.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(value); err == nil {
			return id.String(), false
		}
	}

	id := uuid.New().String()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, maxAge, "/", "", secure, true)

	return id, true
}

func GetCurrent(c *gin.Context) *ct.Current {
	if current, ok := c.Get("current"); ok {
		if curr, ok := current.(*ct.Current); ok {
			return curr
		}
	}

	return ct.GetCurrent(c.Request.Context())
}

func GetSessionID(c *gin.Context) string {
	return GetCurrent(c).SessionID()
}
