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

// minPasswordLength is checked against the plaintext before hashing; the
// stored hash carries no length information.
const minPasswordLength = 6

// AuthService handles registration, login and token refresh.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenManager
	validate *validator.Validate
	events   *rabbitmq.Client
}

// NewAuthService creates a new AuthService. The events client may be nil, in
// which case registration events are simply not published.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenManager, events *rabbitmq.Client) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		validate: NewValidator(),
		events:   events,
	}
}

// Register creates a new account. The email uniqueness check runs before the
// username check, so when both collide the email conflict is the one
// reported. Validation happens before any mutation; nothing is persisted on
// a validation failure.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, &ConflictError{Field: "email"}
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, &ConflictError{Field: "username"}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	fieldErrs := make(map[string][]string)
	if err := asValidationError(s.validate.Struct(user)); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		for field, msgs := range ve.Fields {
			fieldErrs[field] = msgs
		}
	}
	if len(password) < minPasswordLength {
		fieldErrs["password"] = append(fieldErrs["password"],
			"Field 'password' failed on the 'min' tag")
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race with a concurrent registration; re-resolve which
			// identifier collided so the report stays deterministic.
			if _, lookupErr := s.userRepo.GetByEmail(email); lookupErr == nil {
				return nil, &ConflictError{Field: "email"}
			}
			return nil, &ConflictError{Field: "username"}
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.publishEvent("user.registered", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

// Login resolves the account by username or email (username takes precedence
// when both are supplied) and verifies the password. On success it issues one
// access token and one refresh token bound to the user's id. Both failure
// modes map to the same HTTP status at the handler.
func (s *AuthService) Login(username, email, password string) (accessToken, refreshToken string, err error) {
	var user *models.User
	switch {
	case username != "":
		user, err = s.userRepo.GetByUsername(username)
	case email != "":
		user, err = s.userRepo.GetByEmail(email)
	default:
		return "", "", ErrMissingIdentifier
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", "", ErrNoSuchUser
		}
		return "", "", fmt.Errorf("failed to resolve user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return "", "", ErrBadPassword
	}

	accessToken, err = s.tokens.IssueAccess(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err = s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// Refresh verifies a refresh token and mints a new access token for the same
// subject. The refresh token itself is not rotated or invalidated.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	subject, err := s.tokens.Verify(refreshToken, TokenRefresh)
	if err != nil {
		return "", err
	}
	return s.tokens.IssueAccess(subject)
}

func (s *AuthService) publishEvent(routingKey string, payload map[string]interface{}) {
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
