package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// article service. The static listing endpoints share the :slug segment
	// because httprouter cannot mix static children with a wildcard, so
	// showArticleHandler dispatches on the reserved names.
	router.HandlerFunc(http.MethodGet, "/v1/articles", app.getLatestArticlesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/articles/:slug", app.showArticleHandler)

	router.HandlerFunc(http.MethodGet, "/v1/categories", app.getCategoriesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/categories/:slug/articles", app.getArticlesByCategoryHandler)
	router.HandlerFunc(http.MethodGet, "/v1/tags/:slug/articles", app.getArticlesByTagHandler)
	// author service
	router.HandlerFunc(http.MethodGet, "/v1/authors/:username", app.getAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/v1/authors/:username/articles", app.getArticlesByAuthorHandler)

	// newsletter service
	router.HandlerFunc(http.MethodPost, "/v1/newsletter/subscribe", app.subscribeNewsletterHandler)
	router.HandlerFunc(http.MethodPut, "/v1/newsletter/unsubscribe", app.unsubscribeNewsletterHandler)

	// media service
	router.HandlerFunc(http.MethodPost, "/v1/media", app.uploadMediaHandler)

	return app.recoverPanic(app.logRequest(router))
}
