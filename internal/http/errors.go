// Package http contains the fiber handlers for the auth and task
// routes, plus the mapping from domain errors to HTTP responses.
package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

// ErrorHandler is the app-wide fiber error handler. Every error
// response is a small JSON object with a human-readable message;
// unexpected errors are logged and collapsed to a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}

// toHTTPError translates domain errors into fiber errors so the central
// ErrorHandler produces the right status. Storage failures fall through
// untranslated and surface as the generic 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return fiber.NewError(fiber.StatusBadRequest, domain.ErrEmailTaken.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusBadRequest, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrInvalidToken):
		return fiber.NewError(fiber.StatusUnauthorized, domain.ErrInvalidToken.Error())
	case errors.Is(err, domain.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, domain.ErrNotFound.Error())
	}
	return err
}
