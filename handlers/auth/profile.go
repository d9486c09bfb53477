package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/services"
	"github.com/nmdong/VietThanhProductions/utils/middleware"
	"github.com/nmdong/VietThanhProductions/utils/response"
)

// UserResponse is the public projection of a user
type UserResponse struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

// MeResponse wraps the current user
type MeResponse struct {
	User UserResponse `json:"user"`
}

// Me returns the user the access token was issued to
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, response.CodeInvalidToken, "User ID not found in token")
	}

	userID, err := claims.UserID()
	if err != nil {
		return response.Unauthorized(c, response.CodeInvalidToken, "User ID not found in token")
	}

	user, err := h.users.FindByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, response.CodeUserNotFound, "User does not exist")
		}
		return err
	}

	return response.Success(c, MeResponse{
		User: UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}
