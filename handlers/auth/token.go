package auth

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/utils/middleware"
	"github.com/nmdong/VietThanhProductions/utils/response"
)

// RefreshResponse carries the newly minted access token
type RefreshResponse struct {
	Token string `json:"token"`
}

// RevokeResponse confirms a logout
type RevokeResponse struct {
	Revoked bool `json:"revoked"`
}

// Refresh mints a new access token. The route sits behind a refresh-only
// middleware, so the refresh token itself stays valid.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, response.CodeAuthInvalid, "Missing token claims")
	}

	userID, err := claims.UserID()
	if err != nil {
		return response.Unauthorized(c, response.CodeInvalidToken, "User ID not found in token")
	}

	token, _, err := h.jwtManager.GenerateAccessToken(userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token", err)
	}

	return response.Success(c, RefreshResponse{Token: token})
}

// LogoutAccess revokes the access token used for the call
func (h *AuthHandler) LogoutAccess(c *fiber.Ctx) error {
	return h.revokeCurrent(c)
}

// LogoutRefresh revokes the refresh token used for the call
func (h *AuthHandler) LogoutRefresh(c *fiber.Ctx) error {
	return h.revokeCurrent(c)
}

func (h *AuthHandler) revokeCurrent(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, response.CodeAuthInvalid, "Missing token claims")
	}

	if err := h.jwtManager.Revoke(c.UserContext(), claims); err != nil {
		return response.InternalServerError(c, "Failed to revoke token", err)
	}

	slog.Info("token revoked",
		"request_id", response.FromContext(c).ID,
		"jti", claims.ID,
		"type", claims.TokenType,
		"subject", claims.Subject,
	)

	return response.Success(c, RevokeResponse{Revoked: true})
}
