package authorservice

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleEditor Role = "editor"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

type Author struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Profile  *Profile `json:"profile,omitempty"`
}

type Profile struct {
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      Role   `json:"role"`
	// SocialLinks maps a platform name to a profile URL.
	SocialLinks map[string]string `json:"social_links,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type AuthorModel struct {
	db *sql.DB
}

type AuthorService struct {
	m *AuthorModel
}
