package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "punctuation stripped",
			title: "My Awesome App!!",
			want:  "my-awesome-app",
		},
		{
			name:  "lowercased",
			title: "Devfolio Backend",
			want:  "devfolio-backend",
		},
		{
			name:  "underscores become hyphens",
			title: "my_cool_project",
			want:  "my-cool-project",
		},
		{
			name:  "whitespace runs collapse",
			title: "too   many    spaces",
			want:  "too-many-spaces",
		},
		{
			name:  "mixed whitespace and underscores",
			title: "a _ b\t_ c",
			want:  "a-b-c",
		},
		{
			name:  "leading and trailing hyphens trimmed",
			title: "  --wrapped--  ",
			want:  "wrapped",
		},
		{
			name:  "existing hyphens kept",
			title: "already-slugged",
			want:  "already-slugged",
		},
		{
			name:  "digits kept",
			title: "Project 2024 v2",
			want:  "project-2024-v2",
		},
		{
			name:  "all punctuation yields empty",
			title: "!!! ??? ...",
			want:  "",
		},
		{
			name:  "empty input",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyTruncation(t *testing.T) {
	long := strings.Repeat("a", 250)
	got := Slugify(long)
	assert.Len(t, got, 200)

	// Deterministic: same input, same output.
	assert.Equal(t, got, Slugify(long))
}
