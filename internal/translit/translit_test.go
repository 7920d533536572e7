package translit

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugRX = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestTransliterate(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase letters",
			input: "привіт",
			want:  "pryvit",
		},
		{
			name:  "uppercase letters",
			input: "ЩАСТЯ",
			want:  "ShchASTIa",
		},
		{
			name:  "soft sign dropped",
			input: "пісень",
			want:  "pisen",
		},
		{
			name:  "mixed scripts pass latin through",
			input: "рок-гурт Okean Elzy",
			want:  "rok-hurt Okean Elzy",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Transliterate(tc.input))
		})
	}
}

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "ukrainian title",
			input: "Нові інтерв'ю з музикантами",
			want:  "novi-interv-iu-z-muzykantamy",
		},
		{
			name:  "latin with punctuation",
			input: "Hello, World!",
			want:  "hello-world",
		},
		{
			name:  "digits kept",
			input: "Топ 10 альбомів 2024",
			want:  "top-10-albomiv-2024",
		},
		{
			name:  "leading and trailing separators stripped",
			input: "  ---Щедрик---  ",
			want:  "shchedryk",
		},
		{
			name:  "unmapped script drops out",
			input: "日本語",
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Slugify(tc.input)
			assert.Equal(t, tc.want, got)

			if got != "" {
				assert.Regexp(t, slugRX, got)
			}
		})
	}
}
