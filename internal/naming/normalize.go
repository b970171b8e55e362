package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// Normalize folds a display name into a catalog identifier made of lower
// case ASCII letters and digits. Compatibility forms such as full-width
// letters are folded and accents stripped before filtering.
// "AK-47 | Redline (Field-Tested)" becomes "ak47redlinefieldtested".
func Normalize(name string) string {
	// symbols go first so NFKD cannot expand ™ into letters
	t := transform.Chain(runes.Remove(runes.In(unicode.So)), norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, name)
	if err != nil {
		decomposed = name
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// SkinIdentity builds the catalog identifier of a concrete skin drop
func SkinIdentity(base, phase string, cond domain.Condition, variant domain.Variant) string {
	return variant.Prefix() + Normalize(base) + Normalize(phase) + string(cond)
}

// GenericIdentity builds the identifier of a float-less drop
func GenericIdentity(base string, variant domain.Variant) string {
	return variant.Prefix() + Normalize(base)
}
