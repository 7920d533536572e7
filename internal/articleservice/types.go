package articleservice

import (
	"database/sql"
	"time"

	"github.com/kvitkodev/melomane/internal/authorservice"
	"github.com/kvitkodev/melomane/internal/common"
)

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

type Article struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	// ShortDescription is the teaser shown on listing pages.
	ShortDescription string `json:"short_description"`
	// Content is stored in Markdown format.
	Content     string               `json:"content"`
	Author      authorservice.Author `json:"author"`
	AuthorID    int                  `json:"author_id"`
	CategoryID  *int                 `json:"category_id,omitempty"`
	Category    *Category            `json:"category,omitempty"`
	Tags        []Tag                `json:"tags,omitempty"`
	ImageURL    string               `json:"image_url,omitempty"`
	VideoURL    string               `json:"video_url,omitempty"`
	ReadingTime int                  `json:"reading_time"`
	ViewsCount  int                  `json:"views_count"`
	IsFeatured  bool                 `json:"is_featured"`
	Status      ArticleStatus        `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	PublishedAt *time.Time           `json:"published_at,omitempty"`
	Version     int                  `json:"version"`
}

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Metadata describes one page of a paginated listing.
type Metadata struct {
	CurrentPage  int `json:"current_page"`
	PageSize     int `json:"page_size"`
	FirstPage    int `json:"first_page"`
	LastPage     int `json:"last_page"`
	TotalRecords int `json:"total_records"`
}

type ArticlePage struct {
	Articles []Article `json:"articles"`
	Metadata Metadata  `json:"metadata"`
}

type ArticleModel struct {
	db *sql.DB
}

type ArticleService struct {
	m *ArticleModel
	c *common.Cache
}
