package handlers

import (
	"log"
	"strconv"

	"socialhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts. All post routes require an
// access token; the owning user of a new post is the authenticated caller.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// RegisterRoutes registers the post routes with the Fiber app, gated behind
// the access-token middleware.
func (h *PostHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	postRoutes := router.Group("/posts", authRequired)
	postRoutes.Post("/create", h.HandleCreate)
	postRoutes.Get("/user/:id", h.HandleGetUserPosts)
	postRoutes.Get("/:id", h.HandleGet)
	postRoutes.Put("/:id/edit", h.HandleEdit)
	postRoutes.Delete("/:id/delete", h.HandleDelete)
}

// CreatePostRequest represents the request body for post creation.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandleCreate creates a new post owned by the authenticated user.
func (h *PostHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID := c.Locals("user_id").(uint)
	post, err := h.postService.Create(userID, req.Title, req.Content)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully!",
		"post":    post,
	})
}

// HandleGet retrieves a single post by its ID.
func (h *PostHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderServiceError(c, services.ErrNotFound)
	}

	post, err := h.postService.GetByID(id)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Success",
		"post":    post,
	})
}

// HandleEdit applies a partial update to a post. The payload distinguishes
// absent keys (untouched), explicit nulls (clear) and values (assign).
func (h *PostHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderServiceError(c, services.ErrNotFound)
	}

	var payload map[string]*string
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing edit post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	post, err := h.postService.Edit(id, payload)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// HandleDelete removes a post by its ID.
func (h *PostHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderServiceError(c, services.ErrNotFound)
	}

	if err := h.postService.Delete(id); err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// HandleGetUserPosts retrieves all posts owned by the given user.
func (h *PostHandler) HandleGetUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return renderServiceError(c, services.ErrNotFound)
	}

	posts, err := h.postService.GetUserPosts(id)
	if err != nil {
		return renderServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Success",
		"posts":   posts,
	})
}

// parseID reads the :id path parameter as an unsigned integer.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
