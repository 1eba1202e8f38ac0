package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/martijn/miniblog/internal/core/domain"
	"github.com/martijn/miniblog/internal/core/service"
)

const (
	// SessionCookieName is the fixed cookie carrying the session token.
	SessionCookieName = "miniblog_session"

	currentUserKey = "currentUser"

	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"
)

// SetSessionCookie issues the session cookie. No max-age: the cookie
// lives for the browser session, the server-side expiry is
// authoritative. Secure is deliberately not set; the observed design
// runs over plaintext transport (a documented hardening gap).
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, 0, "/", "", false, true)
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

func resolveFromCookie(c *gin.Context, auth *service.AuthService) *domain.User {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	user, err := auth.Resolve(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return user
}

// RequireUser rejects unauthenticated requests by redirecting to the
// login page, carrying the originally requested path so the visitor
// can be sent back after authenticating. The guard only reads session
// state, never mutates it.
func RequireUser(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveFromCookie(c, auth)
		if user == nil {
			target := LoginPath + "?redirectTo=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// ProvideUser attaches the resolved identity when present and an
// explicit nil marker when not, and always lets the request through.
// Used by routes that render differently for anonymous visitors.
func ProvideUser(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(currentUserKey, resolveFromCookie(c, auth))
		c.Next()
	}
}

// CurrentUser retrieves the identity attached by a guard. ok is false
// for anonymous requests (no guard ran, or ProvideUser resolved nobody).
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}

	user, ok := v.(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
