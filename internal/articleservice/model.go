package articleservice

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/kvitkodev/melomane/internal/common"
)

var (
	ErrDuplicateSlug    = errors.New("duplicate slug")
	ErrDuplicateTagName = errors.New("duplicate tag name")
	ErrAuthorForeignKey = errors.New("author_id does not exist")
)

func newArticleModel(db *sql.DB) *ArticleModel {
	return &ArticleModel{db: db}
}

// articleColumns is the shared select list for article listings. Every query
// joins the author and left-joins the optional category so a single scan
// helper covers all of them.
const articleColumns = `
	a.id, a.title, a.slug, a.short_description, a.content, a.image_url, a.video_url,
	a.reading_time, a.views_count, a.is_featured, a.status,
	a.created_at, a.updated_at, a.published_at, a.version,
	u.id, u.username, c.id, c.name, c.slug`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(s rowScanner) (*Article, error) {
	var (
		a            Article
		publishedAt  sql.NullTime
		categoryID   sql.NullInt64
		categoryName sql.NullString
		categorySlug sql.NullString
	)

	err := s.Scan(
		&a.ID, &a.Title, &a.Slug, &a.ShortDescription, &a.Content, &a.ImageURL, &a.VideoURL,
		&a.ReadingTime, &a.ViewsCount, &a.IsFeatured, &a.Status,
		&a.CreatedAt, &a.UpdatedAt, &publishedAt, &a.Version,
		&a.Author.ID, &a.Author.Username, &categoryID, &categoryName, &categorySlug)
	if err != nil {
		return nil, err
	}

	a.AuthorID = a.Author.ID

	if publishedAt.Valid {
		t := publishedAt.Time
		a.PublishedAt = &t
	}

	if categoryID.Valid {
		id := int(categoryID.Int64)
		a.CategoryID = &id
		a.Category = &Category{ID: id, Name: categoryName.String, Slug: categorySlug.String}
	}

	return &a, nil
}

func (m *ArticleModel) collectArticles(rows *sql.Rows) ([]Article, error) {
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (m *ArticleModel) insert(ctx context.Context, a *Article) error {
	query := `
		INSERT INTO articles (title, slug, short_description, content, author_id, category_id, image_url, video_url, reading_time, is_featured, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, views_count, created_at, updated_at, version`

	args := []any{
		a.Title, a.Slug, a.ShortDescription, a.Content, a.AuthorID, a.CategoryID,
		a.ImageURL, a.VideoURL, a.ReadingTime, a.IsFeatured, a.Status, a.PublishedAt,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.ViewsCount, &a.CreatedAt, &a.UpdatedAt, &a.Version)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "articles_slug_key"):
			return ErrDuplicateSlug
		case common.ForeignKeyError(err, "articles_author_id_fkey"):
			return ErrAuthorForeignKey
		default:
			return err
		}
	}

	return m.replaceTags(ctx, a.ID, a.Tags)
}

func (m *ArticleModel) update(ctx context.Context, a *Article) error {
	query := `
		UPDATE articles
		SET title = $1, slug = $2, short_description = $3, content = $4, category_id = $5, image_url = $6, video_url = $7, reading_time = $8, is_featured = $9, status = $10, published_at = $11, updated_at = now(), version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING updated_at, version`

	args := []any{
		a.Title, a.Slug, a.ShortDescription, a.Content, a.CategoryID,
		a.ImageURL, a.VideoURL, a.ReadingTime, a.IsFeatured, a.Status, a.PublishedAt,
		a.ID, a.Version,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&a.UpdatedAt, &a.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		case common.UniqueViolationError(err, "articles_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return m.replaceTags(ctx, a.ID, a.Tags)
}

func (m *ArticleModel) replaceTags(ctx context.Context, articleID int, tags []Tag) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = $1`, articleID)
	if err != nil {
		return err
	}

	for _, tag := range tags {
		_, err = tx.ExecContext(ctx, `INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)`, articleID, tag.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// incrementViews bumps the view counter in a single statement so concurrent
// increments never lose updates. No other column is touched.
func (m *ArticleModel) incrementViews(ctx context.Context, id int) (int, error) {
	query := `
		UPDATE articles
		SET views_count = views_count + 1
		WHERE id = $1
		RETURNING views_count`

	var views int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&views)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, common.ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return views, nil
}

func (m *ArticleModel) getBySlug(ctx context.Context, slug string) (*Article, error) {
	query := `
		SELECT` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.slug = $1 AND a.status = 'published'`

	a, err := scanArticle(m.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	a.Tags, err = m.getTags(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (m *ArticleModel) getTags(ctx context.Context, articleID int) ([]Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = $1
		ORDER BY t.name`

	rows, err := m.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

// getLatest returns published articles newest first, optionally restricted to
// a category slug.
func (m *ArticleModel) getLatest(ctx context.Context, limit int, categorySlug string) ([]Article, error) {
	query := `
		SELECT` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.status = 'published' AND ($1 = '' OR c.slug = $1)
		ORDER BY a.published_at DESC, a.created_at DESC
		LIMIT $2`

	rows, err := m.db.QueryContext(ctx, query, categorySlug, limit)
	if err != nil {
		return nil, err
	}

	return m.collectArticles(rows)
}

func (m *ArticleModel) getFeatured(ctx context.Context, limit int) ([]Article, error) {
	query := `
		SELECT` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.status = 'published' AND a.is_featured = true
		ORDER BY a.published_at DESC, a.created_at DESC
		LIMIT $1`

	rows, err := m.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	return m.collectArticles(rows)
}

func (m *ArticleModel) getPopular(ctx context.Context, since time.Time, limit int) ([]Article, error) {
	query := `
		SELECT` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.status = 'published' AND a.published_at >= $1
		ORDER BY a.views_count DESC
		LIMIT $2`

	rows, err := m.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}

	return m.collectArticles(rows)
}

func (m *ArticleModel) collectArticlePage(rows *sql.Rows) ([]Article, int, error) {
	defer rows.Close()

	var (
		articles     []Article
		totalRecords int
	)

	for rows.Next() {
		var (
			a            Article
			publishedAt  sql.NullTime
			categoryID   sql.NullInt64
			categoryName sql.NullString
			categorySlug sql.NullString
		)

		err := rows.Scan(
			&totalRecords,
			&a.ID, &a.Title, &a.Slug, &a.ShortDescription, &a.Content, &a.ImageURL, &a.VideoURL,
			&a.ReadingTime, &a.ViewsCount, &a.IsFeatured, &a.Status,
			&a.CreatedAt, &a.UpdatedAt, &publishedAt, &a.Version,
			&a.Author.ID, &a.Author.Username, &categoryID, &categoryName, &categorySlug)
		if err != nil {
			return nil, 0, err
		}

		a.AuthorID = a.Author.ID

		if publishedAt.Valid {
			t := publishedAt.Time
			a.PublishedAt = &t
		}

		if categoryID.Valid {
			id := int(categoryID.Int64)
			a.CategoryID = &id
			a.Category = &Category{ID: id, Name: categoryName.String, Slug: categorySlug.String}
		}

		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return articles, totalRecords, nil
}

func (m *ArticleModel) getPageByCategory(ctx context.Context, categoryID, limit, offset int) ([]Article, int, error) {
	query := `
		SELECT count(*) OVER(),` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.status = 'published' AND a.category_id = $1
		ORDER BY a.published_at DESC, a.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return m.collectArticlePage(rows)
}

func (m *ArticleModel) getPageByTag(ctx context.Context, tagID, limit, offset int) ([]Article, int, error) {
	query := `
		SELECT count(*) OVER(),` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		JOIN article_tags at ON at.article_id = a.id
		WHERE a.status = 'published' AND at.tag_id = $1
		ORDER BY a.published_at DESC, a.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, tagID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return m.collectArticlePage(rows)
}

func (m *ArticleModel) getPageByAuthor(ctx context.Context, authorID, limit, offset int) ([]Article, int, error) {
	query := `
		SELECT count(*) OVER(),` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.status = 'published' AND a.author_id = $1
		ORDER BY a.published_at DESC, a.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return m.collectArticlePage(rows)
}

// likePattern builds a substring ILIKE pattern, quoting the LIKE
// metacharacters so the query only ever matches literally.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}

// searchPage matches the query as a case-insensitive substring of the title,
// short description, or content.
func (m *ArticleModel) searchPage(ctx context.Context, query string, limit, offset int) ([]Article, int, error) {
	stmt := `
		SELECT count(*) OVER(),` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.status = 'published' AND (a.title ILIKE $1 OR a.short_description ILIKE $1 OR a.content ILIKE $1)
		ORDER BY a.published_at DESC, a.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, stmt, likePattern(query), limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return m.collectArticlePage(rows)
}

// searchTitles is the lightweight lookup behind live search suggestions.
func (m *ArticleModel) searchTitles(ctx context.Context, query string, limit int) ([]Article, error) {
	stmt := `
		SELECT` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.status = 'published' AND (a.title ILIKE $1 OR a.short_description ILIKE $1)
		ORDER BY a.published_at DESC, a.created_at DESC
		LIMIT $2`

	rows, err := m.db.QueryContext(ctx, stmt, likePattern(query), limit)
	if err != nil {
		return nil, err
	}

	return m.collectArticles(rows)
}

// getRelated returns published articles sharing the category or any of the
// tags, excluding the article itself. The result carries no ranking beyond
// the natural query order.
func (m *ArticleModel) getRelated(ctx context.Context, articleID int, categoryID *int, tagIDs []int, limit int) ([]Article, error) {
	query := `
		SELECT DISTINCT` + articleColumns + `
		FROM articles a
		JOIN users u ON a.author_id = u.id
		LEFT JOIN categories c ON a.category_id = c.id
		LEFT JOIN article_tags at ON at.article_id = a.id
		WHERE a.status = 'published' AND a.id <> $1 AND (a.category_id = $2 OR at.tag_id = ANY($3))
		LIMIT $4`

	rows, err := m.db.QueryContext(ctx, query, articleID, categoryID, pq.Array(tagIDs), limit)
	if err != nil {
		return nil, err
	}

	return m.collectArticles(rows)
}

func (m *ArticleModel) getCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	query := `
		SELECT id, name, slug, sort_order, is_active, created_at, updated_at
		FROM categories
		WHERE slug = $1 AND is_active = true`

	var c Category
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *ArticleModel) getActiveCategories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, slug, sort_order, is_active, created_at, updated_at
		FROM categories
		WHERE is_active = true
		ORDER BY sort_order, name`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (m *ArticleModel) insertCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (name, slug, sort_order, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := m.db.QueryRowContext(ctx, query, c.Name, c.Slug, c.SortOrder, c.IsActive).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "categories_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *ArticleModel) getTagBySlug(ctx context.Context, slug string) (*Tag, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM tags
		WHERE slug = $1`

	var t Tag
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &t, nil
}

func (m *ArticleModel) insertTag(ctx context.Context, t *Tag) error {
	query := `
		INSERT INTO tags (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, t.Name, t.Slug).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		switch {
		case common.UniqueViolationError(err, "tags_slug_key"):
			return ErrDuplicateSlug
		case common.UniqueViolationError(err, "tags_name_key"):
			return ErrDuplicateTagName
		default:
			return err
		}
	}

	return nil
}

func (m *ArticleModel) getUserByUsername(ctx context.Context, username string) (int, string, error) {
	query := `
		SELECT id, username
		FROM users
		WHERE username = $1`

	var (
		id   int
		name string
	)

	err := m.db.QueryRowContext(ctx, query, username).Scan(&id, &name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, "", common.ErrRecordNotFound
		default:
			return 0, "", err
		}
	}

	return id, name, nil
}
