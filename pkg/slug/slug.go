package slug

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ExistsFunc reports whether a slug is already taken within one entity type.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// asciiFold decomposes accented characters and drops everything outside ASCII,
// so "Pédiatrie" becomes "Pediatrie".
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Make converts a display name into a lowercase, hyphen separated ASCII token.
//
//	Make("Jane Doe")            // "jane-doe"
//	Make("  Ear, Nose & Throat") // "ear-nose-throat"
//	Make("Pédiatrie")           // "pediatrie"
func Make(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}

	return strings.Trim(b.String(), "-_")
}

// Unique returns Make(name) when it is free, otherwise the first free
// candidate among "<base>-1", "<base>-2", ...
func Unique(ctx context.Context, name string, exists ExistsFunc) (string, error) {
	base := Make(name)
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate = base + "-" + strconv.Itoa(counter)
	}
}

// WithID suffixes the slugified name with a record identifier. The identifier
// makes the result unique without a lookup.
func WithID(name string, id int) string {
	return Make(name) + "-" + strconv.Itoa(id)
}
