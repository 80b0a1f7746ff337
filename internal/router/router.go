package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/errors"
	"taskboard/internal/handler"
	"taskboard/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	validate *validator.Validate,
	actorService service.ActorService,
	authHandler *handler.AuthHandler,
	meHandler *handler.MeHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validate}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// The session credential is an ambient cookie; echo-jwt terminates
	// requests with a missing or tampered token before any store access.
	sessionMW := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "cookie:" + auth.SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})

	api.POST("/auth/logout", authHandler.Logout, sessionMW)

	// Authorized routes: valid session token plus a resolvable actor.
	v1 := api.Group("/v1", sessionMW, actorMiddleware(actorService))

	v1.GET("/me", meHandler.Me)

	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.PATCH("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)
}

// actorMiddleware turns validated session claims into an Actor, checking the
// live session and resolving the role fresh on every request.
func actorMiddleware(actorService service.ActorService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := handler.SessionClaimsFromContext(c)

			actor, err := actorService.ResolveActor(c.Request().Context(), claims)
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(handler.ActorContextKey, actor)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
