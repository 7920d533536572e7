package authorservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvitkodev/melomane/internal/common"
)

func setupTestEnvironment(t *testing.T) *AuthorService {
	db := common.TestDB("file://../../migrations", t)
	return NewAuthorService(db)
}

func TestCreateAuthor(t *testing.T) {
	s := setupTestEnvironment(t)

	ctx := context.Background()

	t.Run("without profile", func(t *testing.T) {
		author, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
			Username: "olena",
			Email:    "olena@example.com",
		})
		assert.NoError(t, err)
		assert.NotZero(t, author.ID)
		assert.Equal(t, "olena", author.Username)
		assert.Nil(t, author.Profile)
	})

	t.Run("with profile", func(t *testing.T) {
		author, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
			Username: "dmytro",
			Email:    "dmytro@example.com",
			Profile: &Profile{
				Bio:         "Пише про українську електроніку",
				Role:        RoleAuthor,
				SocialLinks: map[string]string{"instagram": "https://instagram.com/dmytro"},
			},
		})
		assert.NoError(t, err)
		assert.NotNil(t, author.Profile)
		assert.NotZero(t, author.Profile.CreatedAt)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
			Username: "olena",
			Email:    "other@example.com",
		})
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
			Username: "olena2",
			Email:    "olena@example.com",
		})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("invalid username", func(t *testing.T) {
		_, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
			Username: "not a handle!",
			Email:    "handle@example.com",
		})
		var verr common.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, "username")
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
			Username: "roless",
			Email:    "roless@example.com",
			Profile:  &Profile{Role: "superuser"},
		})
		var verr common.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, "role")
	})
}

func TestGetAuthorByUsername(t *testing.T) {
	s := setupTestEnvironment(t)

	ctx := context.Background()

	_, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
		Username: "iryna",
		Email:    "iryna@example.com",
		Profile: &Profile{
			Bio:         "Музична журналістка",
			AvatarURL:   "https://storage.googleapis.com/melomane-media/articles/iryna.jpg",
			Role:        RoleEditor,
			SocialLinks: map[string]string{"twitter": "https://twitter.com/iryna"},
		},
	})
	assert.NoError(t, err)

	_, err = s.CreateAuthor(ctx, &CreateAuthorRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	assert.NoError(t, err)

	t.Run("with profile", func(t *testing.T) {
		author, err := s.GetAuthorByUsername(ctx, "iryna")
		assert.NoError(t, err)
		assert.Equal(t, "iryna@example.com", author.Email)
		if assert.NotNil(t, author.Profile) {
			assert.Equal(t, RoleEditor, author.Profile.Role)
			assert.Equal(t, "Музична журналістка", author.Profile.Bio)
			assert.Equal(t, map[string]string{"twitter": "https://twitter.com/iryna"}, author.Profile.SocialLinks)
		}
	})

	t.Run("without profile", func(t *testing.T) {
		author, err := s.GetAuthorByUsername(ctx, "reader")
		assert.NoError(t, err)
		assert.Nil(t, author.Profile)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := s.GetAuthorByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	s := setupTestEnvironment(t)

	ctx := context.Background()

	author, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
		Username: "taras",
		Email:    "taras@example.com",
		Profile:  &Profile{Bio: "old bio", Role: RoleAuthor},
	})
	assert.NoError(t, err)

	err = s.UpdateProfile(ctx, author.ID, &Profile{Bio: "new bio", Role: RoleAdmin})
	assert.NoError(t, err)

	updated, err := s.GetAuthorByUsername(ctx, "taras")
	assert.NoError(t, err)
	if assert.NotNil(t, updated.Profile) {
		assert.Equal(t, "new bio", updated.Profile.Bio)
		assert.Equal(t, RoleAdmin, updated.Profile.Role)
	}

	t.Run("creates missing profile", func(t *testing.T) {
		plain, err := s.CreateAuthor(ctx, &CreateAuthorRequest{
			Username: "newcomer",
			Email:    "newcomer@example.com",
		})
		assert.NoError(t, err)

		err = s.UpdateProfile(ctx, plain.ID, &Profile{Role: RoleAuthor})
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := s.UpdateProfile(ctx, 999999, &Profile{Role: RoleAuthor})
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})
}
