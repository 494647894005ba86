package handlers

import (
	"log"

	"socialhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles. The /me routes are
// always scoped to the token's own identity.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app, gated behind
// the access-token middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users", authRequired)
	userRoutes.Get("/me", h.HandleGetCurrentUser)
	userRoutes.Put("/me/edit", h.HandleEditCurrentUser)
	userRoutes.Get("/:id", h.HandleGetUser)
}

// HandleGetUser retrieves a user's public profile by ID. Email is not
// included.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderServiceError(c, services.ErrNotFound)
	}

	user, err := h.userService.GetProfile(id)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(user.PublicProfile())
}

// HandleGetCurrentUser retrieves the authenticated user's own profile,
// email included.
func (h *UserHandler) HandleGetCurrentUser(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(user.OwnProfile())
}

// HandleEditCurrentUser applies a partial update to the authenticated user's
// own profile.
func (h *UserHandler) HandleEditCurrentUser(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var payload map[string]*string
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing edit profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.userService.EditProfile(userID, payload)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(user.OwnProfile())
}
