package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"socialhub/internal/models"
	"socialhub/internal/repositories"
	"socialhub/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
)

// postEditableFields is the allow-list for partial post updates.
var postEditableFields = []string{"title", "content"}

// PostService handles business logic related to posts.
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	validate *validator.Validate
	events   *rabbitmq.Client
}

// NewPostService creates a new PostService. The events client may be nil.
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, events *rabbitmq.Client) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		validate: NewValidator(),
		events:   events,
	}
}

// Create validates and persists a new post owned by userID. The owner always
// comes from the authenticated caller, never from the payload.
func (s *PostService) Create(userID uint, title, content string) (*models.Post, error) {
	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}
	if err := asValidationError(s.validate.Struct(post)); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.publishEvent("post.created", map[string]interface{}{
		"post_id": post.ID,
		"user_id": post.UserID,
	})
	return post, nil
}

// GetByID retrieves a single post by its ID.
func (s *PostService) GetByID(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetUserPosts retrieves all posts owned by the given user, oldest first.
// The user must exist.
func (s *PostService) GetUserPosts(userID uint) ([]models.Post, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.postRepo.GetByUserID(userID)
}

// Edit applies a partial update to a post. Only title and content are
// editable; an explicit null clears a field, an absent key leaves it alone,
// and a payload touching nothing fails with ErrNoChanges. Assigned values are
// schema-checked before anything is persisted.
func (s *PostService) Edit(id uint, payload map[string]*string) (*models.Post, error) {
	post, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	patches := map[string]FieldPatch{
		"title": {
			Field:  "Title",
			Assign: func(v string) { post.Title = v },
			Clear:  func() { post.Title = "" },
		},
		"content": {
			Field:  "Content",
			Assign: func(v string) { post.Content = v },
			Clear:  func() { post.Content = "" },
		},
	}
	res, err := ApplyPatch(payload, postEditableFields, patches)
	if err != nil {
		return nil, err
	}
	if len(res.Assigned) > 0 {
		if err := asValidationError(s.validate.StructPartial(post, res.Assigned...)); err != nil {
			return nil, err
		}
	}

	if err := s.postRepo.Update(post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// Delete removes a post by its ID.
func (s *PostService) Delete(id uint) error {
	if err := s.postRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (s *PostService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
