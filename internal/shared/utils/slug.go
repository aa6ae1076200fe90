package utils

import (
	"regexp"
	"strings"
)

const maxSlugLength = 200

var (
	slugStripRe  = regexp.MustCompile(`[^\w\s-]`)
	slugHyphenRe = regexp.MustCompile(`[\s_]+`)
	slugTrimRe   = regexp.MustCompile(`^-+|-+$`)
)

// Slugify converts a title into a URL-safe identifier: lowercase, strip
// everything outside word chars / whitespace / hyphens, collapse whitespace
// and underscore runs into single hyphens, trim edge hyphens, cap at 200
// characters. Pure and deterministic; a title made entirely of punctuation
// yields an empty slug, which the unique-slug generator handles by falling
// back to counter-only candidates.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugHyphenRe.ReplaceAllString(slug, "-")
	slug = slugTrimRe.ReplaceAllString(slug, "")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}
