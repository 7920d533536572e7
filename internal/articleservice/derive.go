package articleservice

import (
	"strings"
	"time"

	"github.com/kvitkodev/melomane/internal/translit"
)

// wordsPerMinute is the assumed reading speed for the reading time estimate.
const wordsPerMinute = 200

// prepareForSave keeps the derived fields consistent with the source fields.
// It runs on every create and update, but never on the view-increment path.
func (a *Article) prepareForSave(now time.Time) {
	// An existing slug is never regenerated, re-saving must not move the URL.
	if a.Slug == "" {
		a.Slug = translit.Slugify(a.Title)
	}

	// Empty content keeps the previous reading time untouched.
	if a.Content != "" {
		a.ReadingTime = estimateReadingTime(a.Content)
	}

	// published_at is set exactly once, on the first transition to published.
	if a.Status == StatusPublished && a.PublishedAt == nil {
		t := now
		a.PublishedAt = &t
	}
}

func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// VideoEmbedURL rewrites a YouTube or Vimeo page URL into its embeddable
// player form. URLs that are already embeddable and unrecognized hosts are
// returned unchanged. An empty video URL yields an empty string.
func (a *Article) VideoEmbedURL() string {
	url := strings.TrimSpace(a.VideoURL)
	if url == "" {
		return ""
	}

	switch {
	case strings.Contains(url, "youtube.com/watch"):
		if id := extractBetween(url, "v=", "&"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case strings.Contains(url, "youtu.be/"):
		if id := extractBetween(url, "youtu.be/", "?"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case strings.Contains(url, "youtube.com/embed/"):
		return url
	case strings.Contains(url, "player.vimeo.com/video/"):
		return url
	case strings.Contains(url, "vimeo.com/"):
		if id := extractBetween(url, "vimeo.com/", "?"); id != "" {
			return "https://player.vimeo.com/video/" + id
		}
	}

	return url
}

// extractBetween returns the substring after the first occurrence of start,
// truncated at the first occurrence of stop.
func extractBetween(url, start, stop string) string {
	i := strings.Index(url, start)
	if i == -1 {
		return ""
	}

	s := url[i+len(start):]
	if j := strings.Index(s, stop); j != -1 {
		s = s[:j]
	}

	return s
}
