package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/oshxona/internal/config"
	"github.com/example/oshxona/internal/utils"
)

// AuthHandler issues admin tokens.
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login checks the admin password and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if h.cfg.AdminPasswordHash == "" || h.cfg.JWTSecret == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "admin access not configured")
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !utils.CheckPassword(h.cfg.AdminPasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, "admin", h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"token": token}})
}
