package authorservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/kvitkodev/melomane/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

func newAuthorModel(db *sql.DB) *AuthorModel {
	return &AuthorModel{db: db}
}

func (m *AuthorModel) insertUser(ctx context.Context, username, email string) (int, error) {
	query := `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, username, email).Scan(&id)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "users_username_key"):
			return 0, ErrDuplicateUsername
		case common.UniqueViolationError(err, "users_email_key"):
			return 0, ErrDuplicateEmail
		default:
			return 0, err
		}
	}

	return id, nil
}

// getByUsername resolves a handle to the user identity with its author
// profile. The profile join is optional so plain users still resolve.
func (m *AuthorModel) getByUsername(ctx context.Context, username string) (*Author, error) {
	query := `
		SELECT u.id, u.username, u.email, p.bio, p.avatar_url, p.role, p.social_links, p.created_at, p.updated_at
		FROM users u
		LEFT JOIN author_profiles p ON p.user_id = u.id
		WHERE u.username = $1`

	var (
		author      Author
		bio         sql.NullString
		avatarURL   sql.NullString
		role        sql.NullString
		socialLinks []byte
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := m.db.QueryRowContext(ctx, query, username).Scan(&author.ID, &author.Username, &author.Email, &bio, &avatarURL, &role, &socialLinks, &createdAt, &updatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if role.Valid {
		profile := &Profile{
			Bio:       bio.String,
			AvatarURL: avatarURL.String,
			Role:      Role(role.String),
			CreatedAt: createdAt.Time,
			UpdatedAt: updatedAt.Time,
		}

		if len(socialLinks) > 0 {
			if err := json.Unmarshal(socialLinks, &profile.SocialLinks); err != nil {
				return nil, err
			}
		}

		author.Profile = profile
	}

	return &author, nil
}

func (m *AuthorModel) upsertProfile(ctx context.Context, userID int, profile *Profile) error {
	query := `
		INSERT INTO author_profiles (user_id, bio, avatar_url, role, social_links)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET bio = EXCLUDED.bio, avatar_url = EXCLUDED.avatar_url, role = EXCLUDED.role, social_links = EXCLUDED.social_links, updated_at = now()
		RETURNING created_at, updated_at`

	links := profile.SocialLinks
	if links == nil {
		links = map[string]string{}
	}

	socialLinks, err := json.Marshal(links)
	if err != nil {
		return err
	}

	err = m.db.QueryRowContext(ctx, query, userID, profile.Bio, profile.AvatarURL, profile.Role, socialLinks).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "author_profiles_user_id_fkey"):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}
