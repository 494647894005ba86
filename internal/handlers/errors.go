package handlers

import (
	"errors"
	"fmt"
	"log"

	"socialhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// renderServiceError maps a service-layer failure to its HTTP response.
// Validation and conflict failures carry detail; anything unrecognized is an
// unexpected persistence failure and becomes a 500 (the repository has
// already rolled back by the time it surfaces here).
func renderServiceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": fmt.Sprintf("That %s already exists", conflictErr.Field),
		})
	case errors.Is(err, services.ErrNoChanges):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No valid fields to update",
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
		})
	case errors.Is(err, services.ErrMissingIdentifier):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Enter username or email",
		})
	case errors.Is(err, services.ErrNoSuchUser):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Bad email or username. User doesn't exist.",
		})
	case errors.Is(err, services.ErrBadPassword):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Bad password.",
		})
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrExpiredToken),
		errors.Is(err, services.ErrWrongTokenType):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
			"error":   err.Error(),
		})
	default:
		log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"error":   err.Error(),
		})
	}
}
