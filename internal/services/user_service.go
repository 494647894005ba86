package services

import (
	"errors"
	"fmt"

	"socialhub/internal/models"
	"socialhub/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// profileEditableFields is the allow-list for partial profile updates.
// Email and the password hash are deliberately absent.
var profileEditableFields = []string{
	"username", "display_name", "bio", "location",
	"website", "profile_picture_url", "cover_photo_url",
}

// UserService handles profile reads and edits.
type UserService struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		validate: NewValidator(),
	}
}

// GetProfile retrieves a user by id.
func (s *UserService) GetProfile(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// EditProfile applies a partial update to the profile owned by userID. The
// target is always the authenticated caller's own profile. A username change
// is re-checked for uniqueness before persisting.
func (s *UserService) EditProfile(userID uint, payload map[string]*string) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	patches := map[string]FieldPatch{
		"username": {
			Field:  "Username",
			Assign: func(v string) { user.Username = v },
			Clear:  func() { user.Username = "" },
		},
		"display_name": {
			Field:  "DisplayName",
			Assign: func(v string) { user.DisplayName = v },
			Clear:  func() { user.DisplayName = "" },
		},
		"bio": {
			Field:  "Bio",
			Assign: func(v string) { user.Bio = v },
			Clear:  func() { user.Bio = "" },
		},
		"location": {
			Field:  "Location",
			Assign: func(v string) { user.Location = v },
			Clear:  func() { user.Location = "" },
		},
		"website": {
			Field:  "Website",
			Assign: func(v string) { user.Website = v },
			Clear:  func() { user.Website = "" },
		},
		"profile_picture_url": {
			Field:  "ProfilePictureURL",
			Assign: func(v string) { user.ProfilePictureURL = v },
			Clear:  func() { user.ProfilePictureURL = "" },
		},
		"cover_photo_url": {
			Field:  "CoverPhotoURL",
			Assign: func(v string) { user.CoverPhotoURL = v },
			Clear:  func() { user.CoverPhotoURL = "" },
		},
	}
	res, err := ApplyPatch(payload, profileEditableFields, patches)
	if err != nil {
		return nil, err
	}
	// Unlike the optional profile fields, username is required: a clear via
	// explicit null must not leave the account without one, so it is
	// validated whenever touched, not only when assigned.
	validateFields := res.Assigned
	if value, ok := payload["username"]; ok && value == nil {
		validateFields = append(validateFields, "Username")
	}
	if len(validateFields) > 0 {
		if err := asValidationError(s.validate.StructPartial(user, validateFields...)); err != nil {
			return nil, err
		}
	}

	if value, ok := payload["username"]; ok && value != nil && *value != "" {
		if other, err := s.userRepo.GetByUsername(*value); err == nil && other.ID != userID {
			return nil, &ConflictError{Field: "username"}
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, &ConflictError{Field: "username"}
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
