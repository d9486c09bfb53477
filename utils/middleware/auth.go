package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/model"
	"github.com/nmdong/VietThanhProductions/utils/auth"
	"github.com/nmdong/VietThanhProductions/utils/response"
)

const claimsLocalsKey = "claims"

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// Required is middleware that requires a valid, unrevoked access token
func (m *AuthMiddleware) Required() fiber.Handler {
	return m.Require(model.TokenTypeAccess)
}

// RequiredRefresh is middleware that requires a valid, unrevoked refresh token
func (m *AuthMiddleware) RequiredRefresh() fiber.Handler {
	return m.Require(model.TokenTypeRefresh)
}

// Require rejects the request with 401 AUTH_INVALID unless it carries a
// bearer token of tokenType that passes signature, expiry and denylist checks.
func (m *AuthMiddleware) Require(tokenType model.TokenType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, response.CodeAuthInvalid, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return response.Unauthorized(c, response.CodeAuthInvalid, "Invalid authorization format")
		}

		claims, err := m.jwtManager.Verify(c.UserContext(), parts[1], tokenType)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				return response.Unauthorized(c, response.CodeAuthInvalid, "Token has expired")
			case errors.Is(err, auth.ErrTokenRevoked):
				return response.Unauthorized(c, response.CodeAuthInvalid, "Token has been revoked")
			case errors.Is(err, auth.ErrWrongTokenType):
				return response.Unauthorized(c, response.CodeAuthInvalid, "Only "+string(tokenType)+" tokens are allowed")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims):
				return response.Unauthorized(c, response.CodeAuthInvalid, "Invalid token")
			default:
				slog.Error("token verification failed",
					"request_id", response.FromContext(c).ID,
					"error", err,
				)
				return response.InternalServerError(c, "Failed to check token status", err)
			}
		}

		c.Locals(claimsLocalsKey, claims)

		return c.Next()
	}
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(claimsLocalsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
