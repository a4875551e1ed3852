package handlers

import (
	"log"
	"net/http"

	"nlsqlchat/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// SessionHeader lets API clients pick their session explicitly instead of using the cookie.
	// The value must be a UUID.
	SessionHeader = "X-Session-ID"
	cookieName    = "nlsqlchat"
	sessionIDKey  = "sid"
	appKey        = "app"
)

// NewCookieStore returns the cookie store for browser sessions. secure should only be
// true when the UI is served over https, otherwise browsers drop the cookie.
func NewCookieStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// SessionMiddleware attaches the caller's *session.App to the gin context,
// creating a session id on first contact.
func (h *Handlers) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := headerSessionID(c)
		if id == "" {
			id = h.cookieSessionID(c)
		}
		c.Header(SessionHeader, id)
		c.Set(appKey, h.sessions.GetOrCreate(id))
		c.Next()
	}
}

// headerSessionID returns the X-Session-ID value in canonical form, or "" when it is
// missing or not a UUID.
func headerSessionID(c *gin.Context) string {
	raw := c.GetHeader(SessionHeader)
	if raw == "" {
		return ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Printf("[SESSION] ignoring malformed %s header", SessionHeader)
		return ""
	}
	return id.String()
}

func (h *Handlers) cookieSessionID(c *gin.Context) string {
	sess, err := h.store.Get(c.Request, cookieName)
	if err != nil {
		// A cookie signed with an old secret; start over with a fresh one.
		log.Printf("[SESSION] discarding unreadable cookie: %v", err)
	}
	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id
	}

	id := uuid.New().String()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(c.Request, c.Writer); err != nil {
		log.Printf("[SESSION] failed to save cookie: %v", err)
	}
	return id
}

func currentApp(c *gin.Context) *session.App {
	return c.MustGet(appKey).(*session.App)
}
