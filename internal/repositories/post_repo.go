package repositories

import (
	"socialhub/internal/models"
)

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetByUserID(userID uint) ([]models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
}
