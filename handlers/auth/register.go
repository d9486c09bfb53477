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

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	users      *services.UserService
	jwtManager *authutil.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService, jwtManager *authutil.JWTManager) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtManager: jwtManager,
	}
}

// RegisterRequest is the data part of a register envelope
type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}

// RegisterResponse represents a successful registration response
type RegisterResponse struct {
	UserID uint `json:"userId"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if _, err := request.Bind(c, "register", &req); err != nil {
		return err
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, response.CodeMissingFields, "username and password required")
	}

	passwordHash, err := authutil.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, authutil.ErrPasswordTooLong) {
			return response.ErrorWithDetails(c, fiber.StatusBadRequest, response.CodeValidationError,
				"Validation failed", fiber.Map{"password": err.Error()})
		}
		return response.InternalServerError(c, "Failed to hash password", err)
	}

	userID, err := h.users.CreateUser(c.UserContext(), req.Username, passwordHash, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			return response.BadRequest(c, response.CodeUserExists, "Username already exists")
		}
		return response.InternalServerError(c, "Failed to create user", err)
	}

	slog.Info("user registered",
		"request_id", response.FromContext(c).ID,
		"user_id", userID,
	)

	return response.Created(c, RegisterResponse{UserID: userID})
}
