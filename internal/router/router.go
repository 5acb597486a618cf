package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"modacart/internal/auth"
	"modacart/internal/config"
	"modacart/internal/errors"
	"modacart/internal/handler"
	appmw "modacart/internal/middleware"
	"modacart/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.JWTService,
	authHandler *handler.AuthHandler,
	adminAuthHandler *handler.AdminAuthHandler,
	userHandler *handler.UserHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Route gate: classifies every page request and redirects
	// unauthenticated or unauthorized ones. API routes below carry
	// their own cookie-token guard instead.
	gate := appmw.NewGate(tokens, cfg.IsProduction())
	e.Use(gate.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public auth endpoints
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	api.POST("/admin/login", adminAuthHandler.Login)
	api.POST("/admin/logout", adminAuthHandler.Logout)

	if !cfg.IsProduction() {
		api.GET("/seed/users", seedHandler.SeedUsers)
	}

	// Admin user management: requires a valid admin cookie and the
	// admin role. Token failures answer 401 here, never redirects.
	adminUsers := api.Group("/admin/users",
		echojwt.WithConfig(echojwt.Config{
			TokenLookup: "cookie:" + auth.AdminCookieName,
			ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
				return tokens.Verify(tokenString)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return c.JSON(http.StatusUnauthorized, errors.Fail("unauthorized"))
			},
		}),
		appmw.RequireRole(model.RoleAdmin),
	)
	adminUsers.GET("", userHandler.ListUsers)
	adminUsers.POST("", userHandler.CreateUser)
	adminUsers.GET("/:id", userHandler.GetUser)
	adminUsers.PUT("/:id", userHandler.UpdateUser)
	adminUsers.DELETE("/:id", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
