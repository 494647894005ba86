package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"socialhub/internal/models"
	"socialhub/internal/repositories"
	"socialhub/internal/services"

	"github.com/stretchr/testify/assert"
)

func newPostServiceFixture(t *testing.T) (*services.PostService, *repositories.MockUserRepository, *models.User) {
	t.Helper()
	userRepo := repositories.NewMockUserRepository()
	postRepo := repositories.NewMockPostRepository()

	user := &models.User{Username: "author", Email: "author@example.com", PasswordHash: "x"}
	assert.NoError(t, userRepo.Create(user))

	return services.NewPostService(postRepo, userRepo, nil), userRepo, user
}

func TestPostService_Create(t *testing.T) {
	postService, _, user := newPostServiceFixture(t)

	post, err := postService.Create(user.ID, "T", "C")
	assert.NoError(t, err)
	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "C", post.Content)
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)

	got, err := postService.GetByID(post.ID)
	assert.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Content, got.Content)
	assert.Equal(t, post.UserID, got.UserID)
}

func TestPostService_Create_EmptyContent(t *testing.T) {
	postService, _, user := newPostServiceFixture(t)

	// Empty content fails regardless of the title.
	for _, title := range []string{"", "Post title"} {
		_, err := postService.Create(user.ID, title, "")
		var validation *services.ValidationError
		assert.True(t, errors.As(err, &validation))
		assert.Contains(t, validation.Fields, "content")
	}

	// An untitled post with content is fine.
	_, err := postService.Create(user.ID, "", "some content")
	assert.NoError(t, err)
}

func TestPostService_Create_TitleTooLong(t *testing.T) {
	postService, _, user := newPostServiceFixture(t)

	_, err := postService.Create(user.ID, strings.Repeat("x", 101), "content")
	var validation *services.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Fields, "title")
}

func TestPostService_Edit(t *testing.T) {
	postService, _, user := newPostServiceFixture(t)

	post, err := postService.Create(user.ID, "T", "C")
	assert.NoError(t, err)
	created := post.CreatedAt

	time.Sleep(10 * time.Millisecond)
	edited, err := postService.Edit(post.ID, map[string]*string{
		"title": strptr("T2"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "T2", edited.Title)
	assert.Equal(t, "C", edited.Content) // absent key untouched
	assert.True(t, edited.UpdatedAt.After(created))

	// Explicit null clears the field.
	edited, err = postService.Edit(post.ID, map[string]*string{
		"content": nil,
	})
	assert.NoError(t, err)
	assert.Equal(t, "", edited.Content)
	assert.Equal(t, "T2", edited.Title)
}

func TestPostService_Edit_NoChanges(t *testing.T) {
	postService, _, user := newPostServiceFixture(t)

	post, err := postService.Create(user.ID, "T", "C")
	assert.NoError(t, err)

	_, err = postService.Edit(post.ID, map[string]*string{"user_id": strptr("99")})
	assert.ErrorIs(t, err, services.ErrNoChanges)

	_, err = postService.Edit(post.ID, map[string]*string{})
	assert.ErrorIs(t, err, services.ErrNoChanges)

	// The post is untouched after rejected updates.
	got, err := postService.GetByID(post.ID)
	assert.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, user.ID, got.UserID)
}

func TestPostService_Edit_TitleTooLong(t *testing.T) {
	postService, _, user := newPostServiceFixture(t)

	post, err := postService.Create(user.ID, "T", "C")
	assert.NoError(t, err)

	_, err = postService.Edit(post.ID, map[string]*string{
		"title": strptr(strings.Repeat("x", 101)),
	})
	var validation *services.ValidationError
	assert.True(t, errors.As(err, &validation))

	got, _ := postService.GetByID(post.ID)
	assert.Equal(t, "T", got.Title)
}

func TestPostService_Edit_NotFound(t *testing.T) {
	postService, _, _ := newPostServiceFixture(t)

	_, err := postService.Edit(999, map[string]*string{"title": strptr("T")})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPostService_Delete(t *testing.T) {
	postService, _, user := newPostServiceFixture(t)

	post, err := postService.Create(user.ID, "T", "C")
	assert.NoError(t, err)

	assert.NoError(t, postService.Delete(post.ID))

	_, err = postService.GetByID(post.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.ErrorIs(t, postService.Delete(post.ID), services.ErrNotFound)
}

func TestPostService_GetUserPosts(t *testing.T) {
	postService, userRepo, user := newPostServiceFixture(t)

	first, err := postService.Create(user.ID, "first", "a")
	assert.NoError(t, err)
	second, err := postService.Create(user.ID, "second", "b")
	assert.NoError(t, err)

	other := &models.User{Username: "other", Email: "other@example.com", PasswordHash: "x"}
	assert.NoError(t, userRepo.Create(other))
	_, err = postService.Create(other.ID, "theirs", "c")
	assert.NoError(t, err)

	posts, err := postService.GetUserPosts(user.ID)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)

	// Unknown user id fails with not found.
	_, err = postService.GetUserPosts(999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
