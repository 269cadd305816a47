package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-backend/internal/auth"
	"github.com/taskhive/taskhive-backend/internal/domain"
	"github.com/taskhive/taskhive-backend/internal/users"
)

type AuthHandler struct {
	Users *users.Service
}

func NewAuthHandler(svc *users.Service) *AuthHandler {
	return &AuthHandler{Users: svc}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or empty JSON body")
	}

	token, user, err := h.Users.Register(userContext(c), body.Name, body.Email, body.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or empty JSON body")
	}

	token, user, err := h.Users.Login(userContext(c), body.Email, body.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(authResponse{Token: token, User: user})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return toHTTPError(err)
	}

	user, err := h.Users.Profile(userContext(c), userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(user)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
