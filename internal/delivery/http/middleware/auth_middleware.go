package middleware

import (
	"strings"

	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KeyUserID is the echo.Context key under which Authenticate stores the
// verified caller id.
const KeyUserID = "userID"

// AuthMiddleware provides middleware for bearer-token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the caller id on the
// context. The authorization header carries the raw token; a "Bearer " prefix
// is tolerated and stripped. Missing, malformed, and expired tokens all
// surface the same way so clients cannot probe token state.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := c.Request().Header.Get("Authorization")
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("missing token")
		}

		userID, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage("token rejected")
		}

		c.Set(KeyUserID, userID)

		return next(c)
	}
}

// CallerID extracts the authenticated caller id set by Authenticate.
func CallerID(c echo.Context) (primitive.ObjectID, bool) {
	userID, ok := c.Get(KeyUserID).(primitive.ObjectID)

	return userID, ok
}
