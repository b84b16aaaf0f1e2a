package handler

import (
	"go-pos-backend/internal/service"
	"go-pos-backend/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type validateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Login issues a JWT and rotates the session, kicking any other device.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validator.FirstError(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	response, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return businessError(c, err)
	}

	return c.JSON(response)
}

// ResetPassword changes the password after re-checking the current one.
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validator.FirstError(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.authService.ResetPassword(c.Context(), req.Email, req.OldPassword, req.NewPassword); err != nil {
		return businessError(c, err)
	}

	return c.JSON(fiber.Map{"message": "password updated"})
}

// Heartbeat marks the authenticated user as seen and broadcasts presence.
// POST /api/v1/auth/heartbeat
func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	id, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.authService.Heartbeat(c.Context(), id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to record heartbeat"})
	}

	return c.JSON(fiber.Map{"message": "heartbeat received", "status": "online"})
}

// ValidateToken checks a JWT against the stored session state.
// POST /api/v1/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req validateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validator.FirstError(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	response, err := h.authService.ValidateToken(c.Context(), req.Token)
	if err != nil {
		switch err {
		case service.ErrUserNotFound, service.ErrUserInactive,
			service.ErrSessionSuperseded, service.ErrSessionTimeout:
			return businessError(c, err)
		default:
			// Malformed or expired JWT
			return c.Status(401).JSON(fiber.Map{"error": err.Error(), "code": "INVALID_TOKEN"})
		}
	}

	return c.JSON(response)
}
