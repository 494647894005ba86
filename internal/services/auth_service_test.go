package services_test

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"socialhub/internal/models"
	"socialhub/internal/repositories"
	"socialhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestTokenManager(), nil)

	mockRepo.On("GetByEmail", "test@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByUsername", "testuser").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("testuser", "test@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	// The stored hash must verify against the plaintext and never equal it.
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, services.CheckPassword(user.PasswordHash, "password123"))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_EmailConflictReportedFirst(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestTokenManager(), nil)

	// Both identifiers collide; the email check runs first so the username
	// lookup is never consulted.
	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.User{ID: 1}, nil).Once()

	_, err := authService.Register("takenuser", "taken@example.com", "password123")
	var conflict *services.ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "email", conflict.Field)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "GetByUsername", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_UsernameConflict(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestTokenManager(), nil)

	mockRepo.On("GetByEmail", "new@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByUsername", "takenuser").Return(&models.User{ID: 1}, nil).Once()

	_, err := authService.Register("takenuser", "new@example.com", "password123")
	var conflict *services.ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "username", conflict.Field)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateOnInsert(t *testing.T) {
	// The uniqueness pre-checks pass but the insert hits the index: a
	// concurrent registration won the race. The colliding identifier is
	// re-resolved so the email-first reporting rule still holds.
	duplicateErr := fmt.Errorf("failed to create user: %w", repositories.ErrDuplicate)

	t.Run("email won the race", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, newTestTokenManager(), nil)

		mockRepo.On("GetByEmail", "race@example.com").Return(nil, notFoundErr("user")).Once()
		mockRepo.On("GetByUsername", "racer").Return(nil, notFoundErr("user")).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(duplicateErr).Once()
		mockRepo.On("GetByEmail", "race@example.com").Return(&models.User{ID: 1}, nil).Once()

		_, err := authService.Register("racer", "race@example.com", "password123")
		var conflict *services.ConflictError
		assert.True(t, errors.As(err, &conflict))
		assert.Equal(t, "email", conflict.Field)
		mockRepo.AssertExpectations(t)
	})

	t.Run("username won the race", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := services.NewAuthService(mockRepo, newTestTokenManager(), nil)

		mockRepo.On("GetByEmail", "race@example.com").Return(nil, notFoundErr("user")).Once()
		mockRepo.On("GetByUsername", "racer").Return(nil, notFoundErr("user")).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(duplicateErr).Once()
		mockRepo.On("GetByEmail", "race@example.com").Return(nil, notFoundErr("user")).Once()

		_, err := authService.Register("racer", "race@example.com", "password123")
		var conflict *services.ConflictError
		assert.True(t, errors.As(err, &conflict))
		assert.Equal(t, "username", conflict.Field)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Register_ValidationFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestTokenManager(), nil)

	mockRepo.On("GetByEmail", "not-an-email").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByUsername", "ab").Return(nil, notFoundErr("user")).Once()

	_, err := authService.Register("ab", "not-an-email", "123")
	var validation *services.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Fields, "username")
	assert.Contains(t, validation.Fields, "email")
	assert.Contains(t, validation.Fields, "password")
	// Nothing is persisted on a validation failure.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := newTestTokenManager()
	authService := services.NewAuthService(mockRepo, tokens, nil)

	hash, _ := services.HashPassword("password123")
	user := &models.User{
		ID:           123,
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: hash,
	}

	// Successful login by username issues a token pair bound to the user.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	accessToken, refreshToken, err := authService.Login("testuser", "", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	subject, err := tokens.Verify(accessToken, services.TokenAccess)
	assert.NoError(t, err)
	assert.Equal(t, uint(123), subject)

	subject, err = tokens.Verify(refreshToken, services.TokenRefresh)
	assert.NoError(t, err)
	assert.Equal(t, uint(123), subject)
	mockRepo.AssertExpectations(t)

	// Login by email when no username is supplied.
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	_, _, err = authService.Login("", "test@example.com", "password123")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Username takes precedence when both identifiers are supplied.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, err = authService.Login("testuser", "other@example.com", "password123")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "GetByEmail", "other@example.com")

	// Wrong password.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, err = authService.Login("testuser", "", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrBadPassword)

	// Nonexistent user.
	mockRepo.On("GetByUsername", "ghost").Return(nil, notFoundErr("user")).Once()
	_, _, err = authService.Login("ghost", "", "password123")
	assert.ErrorIs(t, err, services.ErrNoSuchUser)

	// Neither identifier supplied.
	_, _, err = authService.Login("", "", "password123")
	assert.ErrorIs(t, err, services.ErrMissingIdentifier)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Refresh(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := newTestTokenManager()
	authService := services.NewAuthService(mockRepo, tokens, nil)

	refreshToken, err := tokens.IssueRefresh(55)
	assert.NoError(t, err)

	accessToken, err := authService.Refresh(refreshToken)
	assert.NoError(t, err)

	subject, err := tokens.Verify(accessToken, services.TokenAccess)
	assert.NoError(t, err)
	assert.Equal(t, uint(55), subject)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := newTestTokenManager()
	authService := services.NewAuthService(mockRepo, tokens, nil)

	// An access token alone never produces another token.
	accessToken, _ := tokens.IssueAccess(55)
	_, err := authService.Refresh(accessToken)
	assert.ErrorIs(t, err, services.ErrWrongTokenType)
}
