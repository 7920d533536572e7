// Package translit converts Ukrainian Cyrillic text into URL-safe ASCII slugs.
package translit

import (
	"strings"
	"unicode"
)

// ukrToLat maps each Ukrainian letter to its Latin form. The soft sign has no
// Latin equivalent and maps to an empty string.
var ukrToLat = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g", 'д': "d", 'е': "e", 'є': "ie",
	'ж': "zh", 'з': "z", 'и': "y", 'і': "i", 'ї': "i", 'й': "y", 'к': "k", 'л': "l",
	'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch", 'ь': "", 'ю': "iu", 'я': "ia",
	'А': "A", 'Б': "B", 'В': "V", 'Г': "H", 'Ґ': "G", 'Д': "D", 'Е': "E", 'Є': "IE",
	'Ж': "Zh", 'З': "Z", 'И': "Y", 'І': "I", 'Ї': "I", 'Й': "Y", 'К': "K", 'Л': "L",
	'М': "M", 'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "Kh", 'Ц': "Ts", 'Ч': "Ch", 'Ш': "Sh", 'Щ': "Shch", 'Ь': "", 'Ю': "Iu", 'Я': "Ia",
}

// Transliterate replaces every Ukrainian letter with its Latin mapping and
// passes all other runes through unchanged.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if lat, ok := ukrToLat[r]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Slugify transliterates s and reduces it to lowercase ASCII words separated
// by single hyphens. Runes outside [a-z0-9] after transliteration are treated
// as separators, so unmapped scripts simply drop out. The result matches
// ^[a-z0-9]+(-[a-z0-9]+)*$ or is empty when no mappable characters remain.
func Slugify(s string) string {
	s = Transliterate(s)

	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
