package repositories

import (
	"errors"
	"fmt"

	"socialhub/internal/models"

	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create inserts a new post inside a scoped transaction.
func (r *GORMPostRepository) Create(post *models.Post) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post by its ID from the database.
func (r *GORMPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by ID %d: %w", id, err)
	}
	return &post, nil
}

// GetByUserID retrieves all posts belonging to a user, oldest first.
func (r *GORMPostRepository) GetByUserID(userID uint) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	if err := r.db.Order("id").Find(&posts, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get posts for user %d: %w", userID, err)
	}
	return posts, nil
}

// Update persists changes to an existing post inside a scoped transaction.
func (r *GORMPostRepository) Update(post *models.Post) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Save(post)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("post with ID %d: %w", post.ID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// Delete removes a post by its ID inside a scoped transaction.
func (r *GORMPostRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("post with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
