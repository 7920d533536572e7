package articleservice

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kvitkodev/melomane/internal/authorservice"
	"github.com/kvitkodev/melomane/internal/common"
	"github.com/kvitkodev/melomane/internal/translit"
)

const (
	latestArticlesTTL   = 5 * time.Minute
	featuredArticlesTTL = 10 * time.Minute
	popularArticlesTTL  = 10 * time.Minute

	// defaultPopularWindows are the popular-listing windows served by the
	// site pages. RecordView invalidates exactly these; other combinations
	// age out through the TTL.
	defaultPopularLimit = 10
)

var defaultPopularWindows = []int{30, 7}

func NewArticleService(db *sql.DB, c *common.Cache) *ArticleService {
	return &ArticleService{m: newArticleModel(db), c: c}
}

// GetLatestArticles returns published articles newest first, optionally
// filtered by category slug. Results are cached per (category, limit) pair.
func (s *ArticleService) GetLatestArticles(ctx context.Context, limit int, categorySlug string) ([]Article, error) {
	if limit < 1 {
		limit = 10
	}

	key := common.CacheKeyLatestArticles(categorySlug, limit)
	if cached, ok := s.c.Get(key); ok {
		return cached.([]Article), nil
	}

	articles, err := s.m.getLatest(ctx, limit, categorySlug)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, articles, latestArticlesTTL)

	return articles, nil
}

// GetFeaturedArticles returns published articles flagged as featured.
func (s *ArticleService) GetFeaturedArticles(ctx context.Context, limit int) ([]Article, error) {
	if limit < 1 {
		limit = 5
	}

	key := common.CacheKeyFeaturedArticles(limit)
	if cached, ok := s.c.Get(key); ok {
		return cached.([]Article), nil
	}

	articles, err := s.m.getFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, articles, featuredArticlesTTL)

	return articles, nil
}

// GetPopularArticles returns published articles from the last days ordered by
// view count descending.
func (s *ArticleService) GetPopularArticles(ctx context.Context, limit, days int) ([]Article, error) {
	if limit < 1 {
		limit = defaultPopularLimit
	}
	if days < 1 {
		days = 30
	}

	key := common.CacheKeyPopularArticles(days, limit)
	if cached, ok := s.c.Get(key); ok {
		return cached.([]Article), nil
	}

	since := time.Now().AddDate(0, 0, -days)
	articles, err := s.m.getPopular(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, articles, popularArticlesTTL)

	return articles, nil
}

// GetArticlesByCategory returns one page of published articles in the
// category along with the resolved category. An inactive or unknown category
// slug yields common.ErrRecordNotFound even when articles exist under it.
func (s *ArticleService) GetArticlesByCategory(ctx context.Context, slug string, page, pageSize int) (*ArticlePage, *Category, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	page, pageSize = normalizePage(page, pageSize)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	category, err := s.m.getCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	articles, total, err := s.m.getPageByCategory(ctx, category.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}

	return &ArticlePage{Articles: articles, Metadata: calculateMetadata(total, page, pageSize)}, category, nil
}

// GetArticlesByTag returns one page of published articles carrying the tag
// along with the resolved tag.
func (s *ArticleService) GetArticlesByTag(ctx context.Context, slug string, page, pageSize int) (*ArticlePage, *Tag, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	page, pageSize = normalizePage(page, pageSize)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	tag, err := s.m.getTagBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	articles, total, err := s.m.getPageByTag(ctx, tag.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}

	return &ArticlePage{Articles: articles, Metadata: calculateMetadata(total, page, pageSize)}, tag, nil
}

// GetArticlesByAuthor resolves the username and returns one page of the
// author's published articles.
func (s *ArticleService) GetArticlesByAuthor(ctx context.Context, username string, page, pageSize int) (*ArticlePage, *authorservice.Author, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	page, pageSize = normalizePage(page, pageSize)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	id, name, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	author := &authorservice.Author{ID: id, Username: name}

	articles, total, err := s.m.getPageByAuthor(ctx, author.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}

	return &ArticlePage{Articles: articles, Metadata: calculateMetadata(total, page, pageSize)}, author, nil
}

// GetArticleBySlug returns a single published article with its tags loaded.
func (s *ArticleService) GetArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBySlug(ctx, slug)
}

// GetRelatedArticles returns published articles sharing the article's
// category or any of its tags, excluding the article itself. The order is
// best-effort, the underlying query carries no ranking.
func (s *ArticleService) GetRelatedArticles(ctx context.Context, article *Article, limit int) ([]Article, error) {
	if limit < 1 {
		limit = 4
	}

	tagIDs := make([]int, 0, len(article.Tags))
	for _, tag := range article.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	return s.m.getRelated(ctx, article.ID, article.CategoryID, tagIDs, limit)
}

// RecordView increments the article's view counter and drops the popular
// cache entries for the default windows so the hottest metric stays fresh.
// Derived fields are left untouched.
func (s *ArticleService) RecordView(ctx context.Context, article *Article) error {
	views, err := s.m.incrementViews(ctx, article.ID)
	if err != nil {
		return err
	}

	article.ViewsCount = views

	for _, days := range defaultPopularWindows {
		s.c.Delete(common.CacheKeyPopularArticles(days, defaultPopularLimit))
	}

	return nil
}

// SearchArticles returns one page of published articles whose title, short
// description, or content contains the query, case-insensitively. Search
// results are not cached, freshness wins over latency on this path.
func (s *ArticleService) SearchArticles(ctx context.Context, query string, page, pageSize int) (*ArticlePage, error) {
	query = strings.TrimSpace(query)

	v := common.NewValidator()
	v.Check(query != "", "q", "must be provided")
	page, pageSize = normalizePage(page, pageSize)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	articles, total, err := s.m.searchPage(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &ArticlePage{Articles: articles, Metadata: calculateMetadata(total, page, pageSize)}, nil
}

// LiveSearchArticles backs the search-as-you-type suggestions: up to limit
// published articles matched on title or short description only.
func (s *ArticleService) LiveSearchArticles(ctx context.Context, query string, limit int) ([]Article, error) {
	v := common.NewValidator()
	v.Check(len(query) >= 2, "q", "must be at least 2 characters long")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if limit < 1 {
		limit = 5
	}

	return s.m.searchTitles(ctx, query, limit)
}

// GetActiveCategories returns the active categories in display order, for
// navigation menus.
func (s *ArticleService) GetActiveCategories(ctx context.Context) ([]Category, error) {
	return s.m.getActiveCategories(ctx)
}

type CreateArticleRequest struct {
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	ShortDescription string        `json:"short_description"`
	Content          string        `json:"content"`
	AuthorID         int           `json:"author_id"`
	CategoryID       *int          `json:"category_id"`
	Tags             []Tag         `json:"tags"`
	ImageURL         string        `json:"image_url"`
	VideoURL         string        `json:"video_url"`
	IsFeatured       bool          `json:"is_featured"`
	Status           ArticleStatus `json:"status"`
}

// CreateArticle persists a new article after running the derivation pass:
// slug from title, reading time from content, and the publish timestamp when
// the article starts out published.
func (s *ArticleService) CreateArticle(ctx context.Context, req *CreateArticleRequest) (*Article, error) {
	article := &Article{
		Title:            req.Title,
		Slug:             req.Slug,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		AuthorID:         req.AuthorID,
		CategoryID:       req.CategoryID,
		Tags:             req.Tags,
		ImageURL:         req.ImageURL,
		VideoURL:         req.VideoURL,
		IsFeatured:       req.IsFeatured,
		Status:           req.Status,
	}

	if article.Status == "" {
		article.Status = StatusDraft
	}

	article.prepareForSave(time.Now())

	v := common.NewValidator()
	validateArticle(v, article)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.insert(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// UpdateArticle re-runs the derivation pass and persists the article. The
// slug and publish timestamp are sticky: once set they survive any number of
// re-saves and status changes.
func (s *ArticleService) UpdateArticle(ctx context.Context, article *Article) error {
	article.prepareForSave(time.Now())

	v := common.NewValidator()
	validateArticle(v, article)
	v.Check(article.ID > 0, "id", "must be greater than zero")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.update(ctx, article)
}

// CreateCategory persists a category, deriving the slug from the name when
// absent.
func (s *ArticleService) CreateCategory(ctx context.Context, category *Category) error {
	if category.Slug == "" {
		category.Slug = translit.Slugify(category.Name)
	}

	v := common.NewValidator()
	v.Check(category.Name != "", "name", "must be provided")
	validateSlug(v, category.Slug)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.insertCategory(ctx, category)
}

// CreateTag persists a tag, deriving the slug from the name when absent.
func (s *ArticleService) CreateTag(ctx context.Context, tag *Tag) error {
	if tag.Slug == "" {
		tag.Slug = translit.Slugify(tag.Name)
	}

	v := common.NewValidator()
	v.Check(tag.Name != "", "name", "must be provided")
	validateSlug(v, tag.Slug)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.insertTag(ctx, tag)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 12
	}
	return page, pageSize
}

func calculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{CurrentPage: page, PageSize: pageSize}
	}

	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     (totalRecords + pageSize - 1) / pageSize,
		TotalRecords: totalRecords,
	}
}
