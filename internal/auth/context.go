package auth

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is the echo context key the auth middleware stores claims under.
const ContextKey = "user"

// IdentityFromContext recovers the authenticated user id attached by the auth
// middleware. The boolean is false when the request was not authenticated or
// the claim does not carry a valid id.
func IdentityFromContext(c echo.Context) (uuid.UUID, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
