package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"modacart/internal/auth"
)

// Gate classifies every inbound page request as public, protected or
// admin, and redirects requests whose session does not match. It never
// answers 401 or 403 itself; error presentation belongs to the login
// pages it redirects to. JSON API routes are skipped here because they
// carry their own token guard with 401 semantics.
type Gate struct {
	tokens *auth.JWTService
	secure bool
}

// NewGate builds the route gate. secure controls the Secure attribute
// on the cookie it clears when it detects a poisoned session.
func NewGate(tokens *auth.JWTService, secure bool) *Gate {
	return &Gate{tokens: tokens, secure: secure}
}

// Paths that bypass the gate entirely: API routes (guarded separately),
// framework plumbing and static assets.
var skipPrefixes = []string{
	"/api",
	"/swagger",
	"/static",
	"/assets",
	"/healthz",
	"/favicon.ico",
}

// Public pages: browsing the catalog and the informational pages never
// require a session.
var publicPaths = map[string]bool{
	"/":            true,
	"/login":       true,
	"/register":    true,
	"/about":       true,
	"/contact":     true,
	"/track-order": true,
}

var publicPrefixes = []string{
	"/products",
	"/categories",
}

const (
	adminPrefix    = "/admin"
	adminLoginPath = "/admin/login"
)

// Middleware returns the gate as an echo middleware function.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if matchesPrefix(path, skipPrefixes) {
				return next(c)
			}

			if g.isPublic(path) {
				// A logged-in user has no business on the login or
				// register page; send them to their account.
				if (path == "/login" || path == "/register") && g.hasValidSession(c, auth.SessionCookieName) {
					return c.Redirect(http.StatusFound, "/account")
				}
				return next(c)
			}

			if path == adminPrefix || strings.HasPrefix(path, adminPrefix+"/") {
				return g.handleAdmin(c, next, path)
			}

			// Customer areas (/account, /checkout, /orders) and every
			// unclassified path land here: unknown paths fail closed.
			return g.handleProtected(c, next)
		}
	}
}

func (g *Gate) handleAdmin(c echo.Context, next echo.HandlerFunc, path string) error {
	validAdmin := false
	if token := auth.ReadSessionCookie(c, auth.AdminCookieName); token != "" {
		if claims, err := g.tokens.Verify(token); err == nil && claims.Role.IsAdmin() {
			validAdmin = true
		}
	}

	if path == adminLoginPath {
		if validAdmin {
			return c.Redirect(http.StatusFound, "/admin")
		}
		return next(c)
	}

	if !validAdmin {
		return c.Redirect(http.StatusFound, adminLoginPath)
	}
	return next(c)
}

func (g *Gate) handleProtected(c echo.Context, next echo.HandlerFunc) error {
	token := auth.ReadSessionCookie(c, auth.SessionCookieName)
	if token == "" {
		return c.Redirect(http.StatusFound, "/login")
	}

	if _, err := g.tokens.Verify(token); err != nil {
		// Drop the poisoned cookie so the redirect cannot loop.
		auth.ClearSessionCookie(c, auth.SessionCookieName, g.secure)
		return c.Redirect(http.StatusFound, "/login")
	}

	return next(c)
}

func (g *Gate) isPublic(path string) bool {
	return publicPaths[path] || matchesPrefix(path, publicPrefixes)
}

func (g *Gate) hasValidSession(c echo.Context, cookieName string) bool {
	token := auth.ReadSessionCookie(c, cookieName)
	if token == "" {
		return false
	}
	_, err := g.tokens.Verify(token)
	return err == nil
}

// matchesPrefix matches on path segment boundaries, so "/products"
// covers "/products" and "/products/42" but not "/productsale".
func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
