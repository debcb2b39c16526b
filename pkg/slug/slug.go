package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type config struct {
	separator string
	maxLength int
	lowercase bool
}

// Option configures Make.
type Option func(*config)

// Separator sets the word separator. Default: "-".
func Separator(s string) Option {
	return func(c *config) { c.separator = s }
}

// MaxLength truncates the slug to n runes at a word boundary when
// possible. Zero means unlimited. Default: 50, the length of a group
// slug column.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// Lowercase toggles lowercasing. Default: true.
func Lowercase(on bool) Option {
	return func(c *config) { c.lowercase = on }
}

// Make turns s into a URL-safe slug of ASCII letters, digits and
// separators. Diacritics are dropped and Cyrillic is transliterated;
// any other run of characters becomes a single separator.
func Make(s string, opts ...Option) string {
	cfg := config{separator: "-", maxLength: 50, lowercase: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.lowercase {
		s = strings.ToLower(s)
	}
	s = transliterate(s)

	var b strings.Builder
	pending := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	return truncate(b.String(), cfg.separator, cfg.maxLength)
}

// Valid reports whether s is a non-empty slug of lowercase ASCII
// letters, digits, hyphens and underscores.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if t, ok := translit[r]; ok {
			b.WriteString(t)
			continue
		}
		b.WriteRune(r)
	}
	out, _, err := transform.String(stripMarks, b.String())
	if err != nil {
		return b.String()
	}
	return out
}

func truncate(s, sep string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	cut := string(r[:n])
	end := min(n+len([]rune(sep)), len(r))
	if sep != "" && string(r[n:end]) != sep {
		if i := strings.LastIndex(cut, sep); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimSuffix(cut, sep)
}

var translit = map[rune]string{
	'ß': "ss", 'æ': "ae", 'ø': "o", 'đ': "d", 'ł': "l", 'œ': "oe",
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "E",
	'Ж': "Zh", 'З': "Z", 'И': "I", 'Й': "Y", 'К': "K", 'Л': "L", 'М': "M",
	'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "H", 'Ц': "Ts", 'Ч': "Ch", 'Ш': "Sh", 'Щ': "Sch",
	'Ъ': "", 'Ы': "Y", 'Ь': "", 'Э': "E", 'Ю': "Yu", 'Я': "Ya",
}
