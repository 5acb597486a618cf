package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names. The customer flow and the admin flow set different
// cookies; verification and logout must handle both.
const (
	SessionCookieName = "session"
	AdminCookieName   = "auth-token"
)

// SetSessionCookie attaches the token to the response under the given
// cookie name with the session attributes mandated for bearer cookies.
func SetSessionCookie(c echo.Context, name, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadSessionCookie returns the token carried by the named cookie, or
// "" when absent.
func ReadSessionCookie(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// ClearSessionCookie expires the named cookie on the response.
func ClearSessionCookie(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAllSessionCookies expires both bearer cookies. Logout clears
// both regardless of which flow the caller came from.
func ClearAllSessionCookies(c echo.Context, secure bool) {
	ClearSessionCookie(c, SessionCookieName, secure)
	ClearSessionCookie(c, AdminCookieName, secure)
}
