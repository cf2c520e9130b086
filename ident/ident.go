// Package ident derives the slug and short-url candidates assigned to a blog
// entry at first persistence. Uniqueness against the entry table is the
// caller's job; this package only computes candidates.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// ShortIDLength is the number of hex characters kept from the fingerprint.
	ShortIDLength = 8

	// MaxAttempts caps the collision-suffix search. Exhausting it means the
	// entry table is in a pathological state and the caller must fail loudly.
	MaxAttempts = 100
)

var nonSlugRunRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a title to a URL-safe token: lowercased, runs of
// anything outside [a-z0-9] collapsed to a single hyphen, hyphens trimmed
// from both ends. An empty result falls back to "entry".
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugRunRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "entry"
	}
	return slug
}

// ShortID computes the deterministic short-url candidate for an entry: the
// first ShortIDLength hex characters of a SHA-256 fingerprint over the
// title, creation time, and author id.
func ShortID(title string, createdAt time.Time, authorID uuid.UUID) string {
	input := fmt.Sprintf("%s-%s-%s", title, createdAt.UTC().Format(time.RFC3339Nano), authorID)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:ShortIDLength]
}

// WithSuffix returns the nth collision candidate for base. WithSuffix(b, 0)
// is base itself; subsequent candidates are "base-1", "base-2", and so on.
func WithSuffix(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
