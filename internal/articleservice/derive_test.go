package articleservice

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrepareForSaveSlug(t *testing.T) {
	now := time.Now()

	t.Run("derived from title when absent", func(t *testing.T) {
		a := &Article{Title: "Нові релізи тижня", Content: "text"}
		a.prepareForSave(now)
		assert.Equal(t, "novi-relizy-tyzhnia", a.Slug)
	})

	t.Run("existing slug never regenerated", func(t *testing.T) {
		a := &Article{Title: "A Completely New Title", Slug: "old-slug", Content: "text"}
		a.prepareForSave(now)
		a.Title = "Yet Another Title"
		a.prepareForSave(now)
		assert.Equal(t, "old-slug", a.Slug)
	})
}

func TestEstimateReadingTime(t *testing.T) {
	testCases := []struct {
		name  string
		words int
		want  int
	}{
		{name: "single word", words: 1, want: 1},
		{name: "under one minute", words: 199, want: 1},
		{name: "exactly one minute", words: 200, want: 1},
		{name: "just over one minute", words: 201, want: 2},
		{name: "five minutes", words: 1000, want: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content := strings.TrimSpace(strings.Repeat("word ", tc.words))
			assert.Equal(t, tc.want, estimateReadingTime(content))
		})
	}
}

func TestPrepareForSaveReadingTime(t *testing.T) {
	now := time.Now()

	t.Run("recomputed on every save with content", func(t *testing.T) {
		a := &Article{Title: "t", Content: strings.Repeat("word ", 500)}
		a.prepareForSave(now)
		assert.Equal(t, 3, a.ReadingTime)

		a.Content = "short now"
		a.prepareForSave(now)
		assert.Equal(t, 1, a.ReadingTime)
	})

	t.Run("empty content keeps prior value", func(t *testing.T) {
		// The computation is skipped entirely for empty content, the old
		// value stays as-is rather than resetting to 1.
		a := &Article{Title: "t", Content: strings.Repeat("word ", 500)}
		a.prepareForSave(now)
		assert.Equal(t, 3, a.ReadingTime)

		a.Content = ""
		a.prepareForSave(now)
		assert.Equal(t, 3, a.ReadingTime)
	})
}

func TestPrepareForSavePublishedAt(t *testing.T) {
	now := time.Now()

	t.Run("unset while draft", func(t *testing.T) {
		a := &Article{Title: "t", Content: "c", Status: StatusDraft}
		a.prepareForSave(now)
		assert.Nil(t, a.PublishedAt)
	})

	t.Run("set once on first publish", func(t *testing.T) {
		a := &Article{Title: "t", Content: "c", Status: StatusPublished}
		a.prepareForSave(now)
		if assert.NotNil(t, a.PublishedAt) {
			assert.Equal(t, now, *a.PublishedAt)
		}
	})

	t.Run("never overwritten afterwards", func(t *testing.T) {
		a := &Article{Title: "t", Content: "c", Status: StatusPublished}
		a.prepareForSave(now)
		first := *a.PublishedAt

		// Revert to draft and publish again later.
		a.Status = StatusDraft
		a.prepareForSave(now.Add(time.Hour))
		a.Status = StatusPublished
		a.prepareForSave(now.Add(2 * time.Hour))

		assert.Equal(t, first, *a.PublishedAt)
	})
}

func TestVideoEmbedURL(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "youtube watch page",
			url:  "https://www.youtube.com/watch?v=abc123&t=10",
			want: "https://www.youtube.com/embed/abc123",
		},
		{
			name: "youtube short link",
			url:  "https://youtu.be/abc123?si=xyz",
			want: "https://www.youtube.com/embed/abc123",
		},
		{
			name: "youtube already embed",
			url:  "https://www.youtube.com/embed/abc123",
			want: "https://www.youtube.com/embed/abc123",
		},
		{
			name: "vimeo page",
			url:  "https://vimeo.com/123456?share=copy",
			want: "https://player.vimeo.com/video/123456",
		},
		{
			name: "vimeo already embed",
			url:  "https://player.vimeo.com/video/123456",
			want: "https://player.vimeo.com/video/123456",
		},
		{
			name: "unrecognized host passes through",
			url:  "https://example.com/video/42",
			want: "https://example.com/video/42",
		},
		{
			name: "surrounding whitespace trimmed",
			url:  "  https://www.youtube.com/watch?v=abc123  ",
			want: "https://www.youtube.com/embed/abc123",
		},
		{
			name: "absent url yields no embed",
			url:  "",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Article{VideoURL: tc.url}
			assert.Equal(t, tc.want, a.VideoEmbedURL())
		})
	}
}
