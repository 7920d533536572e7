package main

import (
	"errors"
	"net/http"

	"github.com/kvitkodev/melomane/internal/articleservice"
	"github.com/kvitkodev/melomane/internal/common"
	"github.com/kvitkodev/melomane/internal/newsletterservice"
)

func (app *application) getLatestArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readQueryInt(r, "limit", 10)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	category := r.URL.Query().Get("category")

	articles, err := app.articleService.GetLatestArticles(r.Context(), limit, category)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"articles": articles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// showArticleHandler serves the article detail page and the static listing
// endpoints sharing the same path segment.
func (app *application) showArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")

	switch slug {
	case "featured":
		app.getFeaturedArticlesHandler(w, r)
		return
	case "popular":
		app.getPopularArticlesHandler(w, r)
		return
	case "search":
		app.searchArticlesHandler(w, r)
		return
	case "livesearch":
		app.liveSearchArticlesHandler(w, r)
		return
	}

	article, err := app.articleService.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// view counting is best effort, a failed increment never blocks the page
	err = app.articleService.RecordView(r.Context(), article)
	if err != nil {
		app.logError(r, err)
	}

	related, err := app.articleService.GetRelatedArticles(r.Context(), article, 4)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"article": article, "related": related}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getFeaturedArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readQueryInt(r, "limit", 5)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	articles, err := app.articleService.GetFeaturedArticles(r.Context(), limit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"articles": articles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getPopularArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readQueryInt(r, "limit", 10)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	days, err := app.readQueryInt(r, "days", 30)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	articles, err := app.articleService.GetPopularArticles(r.Context(), limit, days)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"articles": articles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) searchArticlesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	page, err := app.readQueryInt(r, "page", 1)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	pageSize, err := app.readQueryInt(r, "page_size", 12)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, err := app.articleService.SearchArticles(r.Context(), query, page, pageSize)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"articles": result.Articles, "metadata": result.Metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) liveSearchArticlesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit, err := app.readQueryInt(r, "limit", 5)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	articles, err := app.articleService.LiveSearchArticles(r.Context(), query, limit)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"articles": articles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// getCategoriesHandler backs the navigation menu. A store failure degrades to
// an empty list so the surrounding page still renders.
func (app *application) getCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.articleService.GetActiveCategories(r.Context())
	if err != nil {
		app.logError(r, err)
		categories = []articleservice.Category{}
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"categories": categories}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getArticlesByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")

	page, err := app.readQueryInt(r, "page", 1)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	pageSize, err := app.readQueryInt(r, "page_size", 12)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, category, err := app.articleService.GetArticlesByCategory(r.Context(), slug, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"category": category, "articles": result.Articles, "metadata": result.Metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getArticlesByTagHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readPathParam(r, "slug")

	page, err := app.readQueryInt(r, "page", 1)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	pageSize, err := app.readQueryInt(r, "page_size", 12)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, tag, err := app.articleService.GetArticlesByTag(r.Context(), slug, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"tag": tag, "articles": result.Articles, "metadata": result.Metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// getAuthorHandler serves the author detail page: identity plus the optional
// profile with bio, role, and social links.
func (app *application) getAuthorHandler(w http.ResponseWriter, r *http.Request) {
	username := app.readPathParam(r, "username")

	author, err := app.authorService.GetAuthorByUsername(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"author": author}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getArticlesByAuthorHandler(w http.ResponseWriter, r *http.Request) {
	username := app.readPathParam(r, "username")

	page, err := app.readQueryInt(r, "page", 1)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	pageSize, err := app.readQueryInt(r, "page_size", 12)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, author, err := app.articleService.GetArticlesByAuthor(r.Context(), username, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"author": author, "articles": result.Articles, "metadata": result.Metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type subscribeNewsletterRequest struct {
	Email string `json:"email"`
}

func (app *application) subscribeNewsletterHandler(w http.ResponseWriter, r *http.Request) {
	var input subscribeNewsletterRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	subscriber, err := app.newsletterService.Subscribe(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, newsletterservice.ErrDuplicateEmail):
			app.failedValidationErrorResponse(w, r, map[string]string{"email": "this email address is already subscribed"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"subscriber": subscriber}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) unsubscribeNewsletterHandler(w http.ResponseWriter, r *http.Request) {
	var input subscribeNewsletterRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.newsletterService.Unsubscribe(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "subscription cancelled"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) uploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	if app.mediaService == nil {
		app.writeErrorResponse(w, r, http.StatusServiceUnavailable, "media uploads are not configured")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.badRequestErrorResponse(w, r, errors.New("a file must be provided in the file form field"))
		return
	}
	defer file.Close()

	url, err := app.mediaService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"url": url}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
