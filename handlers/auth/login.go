package auth

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/services"
	authutil "github.com/nmdong/VietThanhProductions/utils/auth"
	"github.com/nmdong/VietThanhProductions/utils/request"
	"github.com/nmdong/VietThanhProductions/utils/response"
)

// LoginRequest is the data part of a login envelope
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	UserID       uint   `json:"userId"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if _, err := request.Bind(c, "login", &req); err != nil {
		return err
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, response.CodeMissingCredentials, "username and password required")
	}

	user, err := h.users.FindByUsername(c.UserContext(), req.Username)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			return err
		}
		// Keep the timing of unknown usernames close to a wrong password
		_ = authutil.VerifyAgainstDummy(req.Password)
		return h.rejectLogin(c, req.Username)
	}

	if err := authutil.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return h.rejectLogin(c, req.Username)
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token", err)
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token", err)
	}

	slog.Info("user logged in",
		"request_id", response.FromContext(c).ID,
		"user_id", user.ID,
	)

	return response.Success(c, LoginResponse{
		UserID:       user.ID,
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *AuthHandler) rejectLogin(c *fiber.Ctx, username string) error {
	slog.Warn("login failed",
		"request_id", response.FromContext(c).ID,
		"username", username,
		"ip", c.IP(),
	)
	return response.Unauthorized(c, response.CodeInvalidCredentials, "Invalid username or password")
}
