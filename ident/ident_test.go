package ident

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation collapsed", "Hello, World!", "hello-world"},
		{"already slug", "hello-world", "hello-world"},
		{"mixed case and digits", "Go 1.23 Release Notes", "go-1-23-release-notes"},
		{"leading and trailing junk", "  --Hello--  ", "hello"},
		{"only junk falls back", "!!!", "entry"},
		{"empty falls back", "", "entry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestShortID(t *testing.T) {
	authorID := uuid.New()
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	first := ShortID("Hello World", createdAt, authorID)
	assert.Len(t, first, ShortIDLength)
	assert.Regexp(t, "^[0-9a-f]+$", first)

	// Same inputs give the same fingerprint.
	assert.Equal(t, first, ShortID("Hello World", createdAt, authorID))

	// Any input change gives a different candidate.
	assert.NotEqual(t, first, ShortID("Hello World!", createdAt, authorID))
	assert.NotEqual(t, first, ShortID("Hello World", createdAt.Add(time.Nanosecond), authorID))
	assert.NotEqual(t, first, ShortID("Hello World", createdAt, uuid.New()))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "hello-world", WithSuffix("hello-world", 0))
	assert.Equal(t, "hello-world-1", WithSuffix("hello-world", 1))
	assert.Equal(t, "hello-world-2", WithSuffix("hello-world", 2))
	assert.Equal(t, "ab12cd34-7", WithSuffix("ab12cd34", 7))
}
