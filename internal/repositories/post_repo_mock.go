package repositories

import (
	"fmt"
	"sync"
	"time"

	"socialhub/internal/models"
)

// MockPostRepository is an in-memory implementation of PostRepository.
type MockPostRepository struct {
	posts  map[uint]models.Post
	nextID uint
	mu     sync.RWMutex
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts:  make(map[uint]models.Post),
		nextID: 1,
	}
}

// Create adds a new post, assigning the next free ID and timestamps.
func (r *MockPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == 0 {
		post.ID = r.nextID
		r.nextID++
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	r.posts[post.ID] = *post
	return nil
}

// GetByID returns a post by its ID.
func (r *MockPostRepository) GetByID(id uint) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post with ID %d: %w", id, ErrNotFound)
	}
	return &post, nil
}

// GetByUserID returns all posts owned by a user, oldest first.
func (r *MockPostRepository) GetByUserID(userID uint) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]models.Post, 0)
	for id := uint(1); id < r.nextID; id++ {
		if post, ok := r.posts[id]; ok && post.UserID == userID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// Update modifies an existing post and advances its UpdatedAt timestamp.
func (r *MockPostRepository) Update(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.posts[post.ID]
	if !ok {
		return fmt.Errorf("post with ID %d: %w", post.ID, ErrNotFound)
	}
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = *post
	return nil
}

// Delete removes a post by its ID.
func (r *MockPostRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post with ID %d: %w", id, ErrNotFound)
	}
	delete(r.posts, id)
	return nil
}
