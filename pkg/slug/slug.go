// Copyright (c) 2026 Aethercal. All rights reserved.

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Slugs serve as campaign identifiers (e.g. "curse-of-the-aether") when the
// client creates a campaign without picking an explicit ID. Fictional-calendar
// campaign names are full of apostrophes and accents, so normalization matters.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// The pipeline: NFD-decompose accented characters, strip combining marks,
// lowercase, replace everything non-alphanumeric with hyphens, then collapse
// and trim hyphens. "Val'kaurn Märchen" becomes "val-kaurn-marchen".
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
