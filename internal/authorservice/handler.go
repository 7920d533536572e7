package authorservice

import (
	"context"
	"database/sql"
	"regexp"

	"github.com/kvitkodev/melomane/internal/common"
)

var (
	UsernameRX = regexp.MustCompile("^[a-zA-Z0-9]+$")
	EmailRX    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func NewAuthorService(db *sql.DB) *AuthorService {
	return &AuthorService{m: newAuthorModel(db)}
}

// GetAuthorByUsername resolves a human-readable handle to an author identity.
func (s *AuthorService) GetAuthorByUsername(ctx context.Context, username string) (*Author, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByUsername(ctx, username)
}

type CreateAuthorRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Profile  *Profile `json:"profile"`
}

// CreateAuthor registers a user identity and, when a profile is supplied,
// attaches its author profile in the same call.
func (s *AuthorService) CreateAuthor(ctx context.Context, req *CreateAuthorRequest) (*Author, error) {
	v := common.NewValidator()
	validateUsername(v, req.Username)
	validateEmail(v, req.Email)
	if req.Profile != nil {
		validateRole(v, req.Profile.Role)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	id, err := s.m.insertUser(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}

	author := &Author{ID: id, Username: req.Username, Email: req.Email}

	if req.Profile != nil {
		if err := s.m.upsertProfile(ctx, id, req.Profile); err != nil {
			return nil, err
		}
		author.Profile = req.Profile
	}

	return author, nil
}

// UpdateProfile creates or replaces the author profile of an existing user.
func (s *AuthorService) UpdateProfile(ctx context.Context, userID int, profile *Profile) error {
	v := common.NewValidator()
	v.Check(userID > 0, "user_id", "must be greater than zero")
	validateRole(v, profile.Role)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.upsertProfile(ctx, userID, profile)
}

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 25), "username", "must be between 3 and 25 characters long")
	v.Check(v.Matches(username, UsernameRX), "username", "must only contain letters and numbers")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(v.Matches(email, EmailRX), "email", "must be a valid email address")
}

func validateRole(v *common.Validator, role Role) {
	switch role {
	case RoleEditor, RoleAuthor, RoleAdmin:
	default:
		v.AddError("role", "must be one of editor, author, or admin")
	}
}
