package articleservice

import (
	"regexp"

	"github.com/kvitkodev/melomane/internal/common"
)

var SlugRX = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(v.Matches(slug, SlugRX), "slug", "must only contain lowercase letters, numbers, and hyphens")
}

func validateArticle(v *common.Validator, a *Article) {
	v.Check(a.Title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(a.Title, 1, 200), "title", "must not be more than 200 characters long")
	validateSlug(v, a.Slug)
	v.Check(a.ShortDescription != "", "short_description", "must be provided")
	v.Check(v.CheckStringLength(a.ShortDescription, 1, 300), "short_description", "must not be more than 300 characters long")
	v.Check(a.Content != "", "content", "must be provided")
	v.Check(a.AuthorID > 0, "author_id", "must be greater than zero")

	switch a.Status {
	case StatusDraft, StatusPublished:
	default:
		v.AddError("status", "must be either draft or published")
	}
}
