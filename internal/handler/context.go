package handler

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/model"
)

// ActorContextKey is where the actor middleware stores the resolved Actor.
const ActorContextKey = "actor"

// jwtContextKey is where echo-jwt stores the parsed session token.
const jwtContextKey = "user"

// ActorFromContext returns the Actor resolved for this request, or nil.
func ActorFromContext(c echo.Context) *model.Actor {
	actor, _ := c.Get(ActorContextKey).(*model.Actor)
	return actor
}

// SessionClaimsFromContext extracts validated session claims set by the
// echo-jwt middleware, or nil if the request carried no valid token.
func SessionClaimsFromContext(c echo.Context) *auth.SessionClaims {
	token, ok := c.Get(jwtContextKey).(*jwt.Token)
	if !ok {
		return nil
	}
	claims, _ := token.Claims.(*auth.SessionClaims)
	return claims
}
